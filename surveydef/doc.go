// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package surveydef loads survey definitions.

Definitions are YAML (JSON also parses) and are checked before use: at
least one question, unique question ids, a known type, and unique
non-empty option values. The built-in definition is embedded from
default.yaml.
*/
package surveydef
