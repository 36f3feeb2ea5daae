// Package key defines the closed keyboard vocabulary: physical keys and
// modifier sets. Modifier is a bit set over the four modifier keys, so two
// modifier sets built in different orders always compare equal.
package key
