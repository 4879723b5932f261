/*
Package state defines the replicated vault configuration.

A State value is never modified in place by callers. It is the deterministic
output of replaying executed vault state operations, see the projection
package. Operations mutate a copy and the copy replaces the previous value only
on success.
*/
package state
