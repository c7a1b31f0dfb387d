// Package geom implements the small amount of rigid-body math the layer
// needs: 3-vectors, unit quaternions, and pose composition.
//
// There is deliberately no general-purpose linear algebra here. The layer
// only ever composes two or three poses per locateSpace call, so a minimal,
// allocation-free implementation is preferable to pulling in a full math
// library for three functions.
package geom
