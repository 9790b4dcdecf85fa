// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/binary"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tomtom215/georec/internal/recommend/algorithms"
	"gonum.org/v1/gonum/mat"
)

// FormatVersion is the current artifact envelope version.
const FormatVersion uint16 = 1

var magic = []byte("GREC")

// ErrInvalidArtifact is returned when an artifact fails structural validation.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Kind identifies an artifact and doubles as its object key.
type Kind string

// Artifact kinds.
const (
	KindFactorModel    Kind = "svd_model"
	KindUserSimilarity Kind = "user_similarities"
	KindItemSimilarity Kind = "item_similarities"
)

// Metadata contains information about a stored artifact.
type Metadata struct {
	// Kind is the artifact kind.
	Kind Kind `json:"kind"`

	// FormatVersion is the envelope version the artifact was written with.
	FormatVersion uint16 `json:"format_version"`

	// Rows and Cols are the dimensions of the primary matrix.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Rank is the factorization rank (factor model only).
	Rank int `json:"rank,omitempty"`

	// Seed is the training seed recorded for reproducibility.
	Seed int64 `json:"seed"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was encoded.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 checksum of the uncompressed state.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed state size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`

	// DataFingerprint identifies the row and column order of the training data.
	DataFingerprint string `json:"data_fingerprint"`
}

// FactorModelState is the serializable form of a rank-k factorization.
type FactorModelState struct {
	Rank      int
	UserCount int
	ItemCount int

	// UserFactors is row-major UserCount×Rank.
	UserFactors []float64

	// ItemFactors is row-major Rank×ItemCount.
	ItemFactors []float64

	SingularValues         []float64
	ExplainedVarianceRatio []float64
}

// SimilarityState is the serializable form of a square similarity matrix.
type SimilarityState struct {
	N int

	// Data is the full row-major N×N matrix.
	Data []float64
}

// storedFile is the envelope body following the magic and version header.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// encode serializes state with the given metadata into the artifact envelope.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func encode(meta Metadata, state interface{}) ([]byte, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(state); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	hash := sha256.Sum256(raw.Bytes())
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compress state: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta.FormatVersion = FormatVersion
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	var out bytes.Buffer
	out.Write(magic)
	var version [2]byte
	binary.BigEndian.PutUint16(version[:], FormatVersion)
	out.Write(version[:])

	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(&out).Encode(sf); err != nil {
		return nil, fmt.Errorf("write envelope: %w", err)
	}
	return out.Bytes(), nil
}

// decode reads the envelope, verifies kind and checksum and decodes the state
// into target.
func decode(data []byte, kind Kind, target interface{}) (*Metadata, error) {
	if len(data) < len(magic)+2 || !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidArtifact)
	}
	version := binary.BigEndian.Uint16(data[len(magic) : len(magic)+2])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrInvalidArtifact, version)
	}

	var sf storedFile
	if err := gob.NewDecoder(bytes.NewReader(data[len(magic)+2:])).Decode(&sf); err != nil {
		return nil, fmt.Errorf("%w: read envelope: %v", ErrInvalidArtifact, err)
	}
	if sf.Metadata.Kind != kind {
		return nil, fmt.Errorf("%w: kind %q, want %q", ErrInvalidArtifact, sf.Metadata.Kind, kind)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrInvalidArtifact, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("%w: read decompressed data: %v", ErrInvalidArtifact, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s", ErrInvalidArtifact, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("%w: decode state: %v", ErrInvalidArtifact, err)
	}
	return &sf.Metadata, nil
}

// EncodeFactorModel encodes a factor model artifact.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func EncodeFactorModel(state *FactorModelState, meta Metadata) ([]byte, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	meta.Kind = KindFactorModel
	meta.Rows, meta.Cols, meta.Rank = state.UserCount, state.ItemCount, state.Rank
	return encode(meta, state)
}

// DecodeFactorModel decodes and validates a factor model artifact.
func DecodeFactorModel(data []byte) (*FactorModelState, *Metadata, error) {
	var state FactorModelState
	meta, err := decode(data, KindFactorModel, &state)
	if err != nil {
		return nil, nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, nil, err
	}
	return &state, meta, nil
}

// EncodeSimilarity encodes a similarity artifact of the given kind.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func EncodeSimilarity(kind Kind, state *SimilarityState, meta Metadata) ([]byte, error) {
	if kind != KindUserSimilarity && kind != KindItemSimilarity {
		return nil, fmt.Errorf("%w: %q is not a similarity kind", ErrInvalidArtifact, kind)
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	meta.Kind = kind
	meta.Rows, meta.Cols = state.N, state.N
	return encode(meta, state)
}

// DecodeSimilarity decodes and validates a similarity artifact.
func DecodeSimilarity(kind Kind, data []byte) (*SimilarityState, *Metadata, error) {
	var state SimilarityState
	meta, err := decode(data, kind, &state)
	if err != nil {
		return nil, nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, nil, err
	}
	return &state, meta, nil
}

// Validate checks internal consistency of the factor model.
func (s *FactorModelState) Validate() error {
	switch {
	case s.Rank < 1 || s.UserCount < 1 || s.ItemCount < 1:
		return fmt.Errorf("%w: rank=%d users=%d items=%d", ErrInvalidArtifact, s.Rank, s.UserCount, s.ItemCount)
	case s.Rank > s.UserCount || s.Rank > s.ItemCount:
		return fmt.Errorf("%w: rank %d exceeds min(%d, %d)", ErrInvalidArtifact, s.Rank, s.UserCount, s.ItemCount)
	case len(s.UserFactors) != s.UserCount*s.Rank:
		return fmt.Errorf("%w: user factors length %d, want %d", ErrInvalidArtifact, len(s.UserFactors), s.UserCount*s.Rank)
	case len(s.ItemFactors) != s.Rank*s.ItemCount:
		return fmt.Errorf("%w: item factors length %d, want %d", ErrInvalidArtifact, len(s.ItemFactors), s.Rank*s.ItemCount)
	case len(s.SingularValues) != s.Rank:
		return fmt.Errorf("%w: %d singular values, want %d", ErrInvalidArtifact, len(s.SingularValues), s.Rank)
	}
	if !allFinite(s.UserFactors) || !allFinite(s.ItemFactors) || !allFinite(s.SingularValues) {
		return fmt.Errorf("%w: non-finite factor values", ErrInvalidArtifact)
	}
	return nil
}

// Validate checks the similarity matrix invariants.
func (s *SimilarityState) Validate() error {
	if s.N < 1 || len(s.Data) != s.N*s.N {
		return fmt.Errorf("%w: similarity n=%d with %d values", ErrInvalidArtifact, s.N, len(s.Data))
	}
	if err := algorithms.ValidateSimilarity(mat.NewDense(s.N, s.N, s.Data), s.N); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return nil
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Register gob types for serialization.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(FactorModelState{})
	gob.Register(SimilarityState{})
	gob.Register(Metadata{})
	gob.Register(storedFile{})
}
