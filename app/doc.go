/*
Package app implements the vault Engine, the single owned context that holds
the operation registry, the projected configuration and the persistent store.

The Engine is not safe for concurrent use. The host must deliver requests to
one engine instance one at a time, the way an actor processes its mailbox.
External calls made while executing an operation block the engine until they
return.

Operations returned by the Engine are copies. Changing them has no effect on
the registry.
*/
package app
