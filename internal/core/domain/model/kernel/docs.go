// Package kernel contains the shared value objects of the dispatch domain:
// UUID identifiers and geographic points with great-circle distance.
// All types are immutable and must be created through their constructors.
package kernel
