// Package config implements the Config Model: parsing the layer's
// plain-text key/value configuration file into an immutable-after-load
// struct, and a second structural validation pass over the assembled
// result.
//
// Neither pass ever aborts the load. A config file that fails to open, or
// individual lines/fields that fail to parse or validate, are reported as
// warnings and the corresponding field is left at its documented default
// (see Default). This mirrors the original implementation's LoadConfiguration,
// which logs and continues on any per-line parse error rather than treating
// configuration problems as fatal.
package config
