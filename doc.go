/*
Package vault defines the primitives shared by all parts of the custodial
vault engine: addresses, time, storage interfaces and the context keys used
to pass request scoped values.

We pass context through context.Context between the engine, the scheduler
and the external collaborators. There should exist two functions for every
XYZ of type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

The engine itself lives in package app. The operation catalogue lives in
x/txn, the replicated configuration in x/state.
*/
package vault
