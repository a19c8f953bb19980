// Package interpreter executes frag programs by walking the AST produced by
// the parser. There is no compilation step: each statement is evaluated in
// order against a single runtime.Environment, printed values are collected
// (and optionally streamed), and the value of the last expression statement
// is reported back to the caller. Evaluation stops at the first runtime error.
package interpreter
