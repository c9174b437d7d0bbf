// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order moves along pending -> confirmed -> accepted -> preparing -> ready ->
// onTheWay -> delivered, with cancelled and rejected reachable only from the two
// earliest states. The aggregate owns every mutation: courier assignment happens
// exactly once and only together with the transition to onTheWay, and delivery of
// a cash-on-delivery order settles the payment in the same state change.
package order
