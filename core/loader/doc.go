// Package loader registers HTTP features and mounts the enabled ones.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// A Manager keeps features in registration order. LoadAll skips disabled features and
// returns the first load error wrapped with the feature name.
package loader
