// Package parse decodes JSON payloads cut out of raw LLM text.
//
// [Strict] is a plain decode and reports the first syntax or type error.
// [Lenient] applies a layered recovery strategy before giving up: automatic
// JSON repair (closing truncated arrays, quoting keys, dropping trailing
// commas) followed by unwrapping of schema-style {"type", "value"} envelopes
// that models sometimes emit in place of real values.
package parse
