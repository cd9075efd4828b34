// Package seal protects credentials stored in configuration files.
//
// Secrets are sealed with an AEAD cipher under a key derived from a
// passphrase, then armored into a single printable string safe to
// embed in YAML. The cipher is chosen per platform: AES-GCM where
// hardware acceleration is available, ChaCha20-Poly1305 elsewhere.
// Both directions accept either cipher, so sealed values move between
// machines.
package seal
