/*
Package txn implements the catalogue of vault operations and the approval
state machine shared by all of them.

Every operation is a record embedding Common, the fields shared by all kinds,
and the request payload it was created from. The set of kinds is closed.
Behaviour that depends on the kind (threshold, local mutation, external
effect) is implemented with exhaustive type switches. A new kind is added by
declaring its request, its record and a case in each switch.

Lifecycle of a record:

	Blocked -> Pending -> Approved -> Executed
	                   |           -> Failed | Rejected
	                   -> Rejected

Any unfinished record can be forced into Purged. Executed, Rejected, Failed
and Purged are terminal and such records never change again.
*/
package txn
