// Package scene defines the scene description produced by script
// evaluation: an ordered list of named solids to be meshed. A scene is
// never mutated after evaluation; each evaluation produces a new one.
package scene
