// Package config defines the format-agnostic problem model and the Loader
// interface that produces it.
//
// The model keeps raw numbers and names. It is turned into typed tasks,
// constraint trees and dependency edges once the axis unit is known.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
