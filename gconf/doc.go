/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package owns a single configuration object stored under the "_c:<pkg>"
key. The initial value is read from the "conf" section of a genesis file.
Configuration must always pass validation before it is written.
*/
package gconf
