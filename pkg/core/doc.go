// Package core provides the domain model for the crop allocation optimizer.
//
// It contains the validated, immutable parameter set for one optimization
// run and the types shared by the objective builder, the constraint builder
// and the solver adapter:
//
//   - Crop: per-hectare economic and agronomic attributes
//   - Field: site attributes (area, water, rainfall, soil suitability)
//   - Weights: relative influence of the objective terms
//   - VariableKey: identity of one (field, crop) decision variable
//   - ResourceConstraint: one linear inequality row
//   - AllocationReport: the typed result of a completed run
//
// Parameters are validated once at construction and never mutated, so a
// single instance can safely be shared by concurrent runs (for example the
// same scenario solved under several weight configurations in parallel).
package core
