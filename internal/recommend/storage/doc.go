// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

// Package storage provides versioned persistence for trained model artifacts.
//
// A trained snapshot is persisted as three independent artifacts in the
// region's models bucket:
//
//	svd_model          rank-k factorization (user and item factors)
//	user_similarities  n_users × n_users cosine similarity
//	item_similarities  n_items × n_items cosine similarity
//
// # Encoding
//
// Each artifact uses the same envelope:
//
//	offset 0  magic "GREC" (4 bytes)
//	offset 4  format version, big-endian uint16
//	offset 6  gob(storedFile{Metadata, CompressedData})
//
// CompressedData is the gzip-compressed gob encoding of the artifact state.
// Metadata carries the SHA-256 of the uncompressed state, the artifact kind,
// its dimensions and training timestamps.
//
// # Validation
//
// Decoding rejects an artifact when any of the following holds:
//   - magic or format version is unknown
//   - kind does not match the requested artifact
//   - checksum mismatch
//   - dimensions disagree with the payload length
//   - a value is NaN or infinite
//   - a similarity matrix is not symmetric, has a non-unit diagonal or
//     contains values outside [-1, 1]
//
// All such failures wrap ErrInvalidArtifact so the model store can fall back
// to retraining.
package storage
