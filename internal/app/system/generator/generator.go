// internal/app/system/generator/generator.go

// Package generator produces question candidates from course documents.
// Two implementations exist: Gemini calls Google's generative API, Static
// derives deterministic questions locally for development and tests. Both
// satisfy the pipeline's Generator interface.
package generator
