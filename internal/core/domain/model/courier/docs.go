// Package courier contains the Courier aggregate: identity, contact details,
// the availability flag that gates matching, and the last-known location.
//
// Availability is the courier's own toggle. An unavailable courier may still be
// bound to an in-flight order (it must finish what it started) but is never a
// candidate for new matches. Location arrives from an out-of-band feed and is
// read-only to the rest of the domain.
package courier
