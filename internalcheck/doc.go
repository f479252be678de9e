// Package internalcheck holds static checks over the c25519 sources that
// the compiler cannot enforce, such as the rule that limb arithmetic never
// branches on data.
//
// It contains no exported API and exists only for its tests.
package internalcheck
