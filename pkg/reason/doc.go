// Package reason builds reasoning paths: bounded depth-first walks from a
// matched behavior node to the node types the detected intent requires, plus
// similar-case resolution and vehicle-entity candidate promotion.
package reason
