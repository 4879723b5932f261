/*
Package errors implements the error model of the vault engine.

Every error returned by the engine wraps one of the root errors declared in
this package. Root errors carry a unique numeric code, so a client can
distinguish failures without parsing messages, and an operation record can
persist the failure it ended with as a code and a message.

Use ErrXyz.New and ErrXyz.Newf to create an instance, and Wrap or Wrapf to
add context to an error returned by a lower layer. A stack trace is attached
at the innermost wrap only.

Once you have an error, fmt verbs give more or less context:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
