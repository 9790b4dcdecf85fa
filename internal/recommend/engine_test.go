// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tomtom215/georec/internal/objectstore"
	"gonum.org/v1/gonum/mat"
)

const testRegion = "us-east-1"

// sampleMatrixCSV is users {A,B,C} × products {X,Y,Z} with
// A:{X:5}, B:{X:4,Y:3}, C:{Y:5,Z:2}.
const sampleMatrixCSV = `user_id,X,Y,Z
A,5,,
B,4,3,
C,,5,2
`

const sampleFeaturesCSV = `product_id,product_category_name,price,rating
X,electronics,10.5,4.5
Y,electronics,20,3.0
Z,books,,4.0
`

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Region = testRegion
	cfg.Regions = []string{testRegion, "us-west-1", "eu-west-1"}
	cfg.Model.Components = 1
	return cfg
}

func setupObjects(t *testing.T, matrixCSV, featuresCSV string) *objectstore.BadgerStore {
	t.Helper()

	db, err := objectstore.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	objects := objectstore.NewBadgerStore(db)
	ctx := context.Background()
	bucket := objectstore.ProcessedBucket(testRegion)
	if matrixCSV != "" {
		if err := objects.Put(ctx, bucket, objectstore.InteractionMatrixObject, []byte(matrixCSV)); err != nil {
			t.Fatalf("Put(matrix) error = %v", err)
		}
	}
	if featuresCSV != "" {
		if err := objects.Put(ctx, bucket, objectstore.ProductFeaturesObject, []byte(featuresCSV)); err != nil {
			t.Fatalf("Put(features) error = %v", err)
		}
	}
	return objects
}

func newTestEngine(t *testing.T, objects objectstore.Store, peers PeerClient) *Engine {
	t.Helper()

	engine, err := NewEngine(testConfig(), objects, peers, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// setupEngine returns a ready engine over the sample data.
func setupEngine(t *testing.T) *Engine {
	t.Helper()

	engine := newTestEngine(t, setupObjects(t, sampleMatrixCSV, sampleFeaturesCSV), nil)
	if err := engine.LoadOrTrain(context.Background()); err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}
	return engine
}

func TestNewEngine_Validation(t *testing.T) {
	objects := setupObjects(t, "", "")

	if _, err := NewEngine(testConfig(), nil, nil, zerolog.Nop()); err == nil {
		t.Error("NewEngine(nil objects) error = nil, want error")
	}

	bad := testConfig()
	bad.Region = ""
	if _, err := NewEngine(bad, objects, nil, zerolog.Nop()); err == nil {
		t.Error("NewEngine(empty region) error = nil, want error")
	}

	engine, err := NewEngine(nil, objects, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine(nil config) error = %v", err)
	}
	if engine.Region() != DefaultConfig().Region {
		t.Errorf("Region() = %q, want %q", engine.Region(), DefaultConfig().Region)
	}
}

func TestEngine_NotReady(t *testing.T) {
	engine := newTestEngine(t, setupObjects(t, "", ""), nil)
	ctx := context.Background()

	if engine.Ready() {
		t.Fatal("Ready() = true before load")
	}

	if _, err := engine.Recommend(ctx, "A", RecommendOptions{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Recommend() error = %v, want ErrNotReady", err)
	}
	if _, err := engine.Popular(ctx, 5, nil, nil); !errors.Is(err, ErrNotReady) {
		t.Errorf("Popular() error = %v, want ErrNotReady", err)
	}
	if _, err := engine.Similar(ctx, "X", 5); !errors.Is(err, ErrNotReady) {
		t.Errorf("Similar() error = %v, want ErrNotReady", err)
	}
	if _, err := engine.Trending(ctx, 5, "", 24); !errors.Is(err, ErrNotReady) {
		t.Errorf("Trending() error = %v, want ErrNotReady", err)
	}

	stats := engine.Stats()
	if stats.ModelsLoaded {
		t.Error("Stats().ModelsLoaded = true before load")
	}
	if stats.Region != testRegion {
		t.Errorf("Stats().Region = %q, want %q", stats.Region, testRegion)
	}
}

func TestEngine_LoadOrTrain_MissingData(t *testing.T) {
	engine := newTestEngine(t, setupObjects(t, "", ""), nil)

	err := engine.LoadOrTrain(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("LoadOrTrain() error = %v, want ErrDataUnavailable", err)
	}
	if engine.Ready() {
		t.Error("Ready() = true after failed load")
	}
	if engine.Stats().LastError == "" {
		t.Error("Stats().LastError is empty after failed load")
	}
}

func TestEngine_LoadOrTrain_NonFiniteData(t *testing.T) {
	objects := setupObjects(t, "user_id,X,Y,Z\nA,inf,,\nB,4,3,\nC,,5,2\n", "")
	engine := newTestEngine(t, objects, nil)
	ctx := context.Background()

	if err := engine.LoadOrTrain(ctx); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("LoadOrTrain() error = %v, want ErrDataUnavailable", err)
	}
	if engine.Ready() {
		t.Error("Ready() = true after non-finite data")
	}

	if err := objects.Put(ctx, objectstore.ProcessedBucket(testRegion), objectstore.InteractionMatrixObject, []byte(sampleMatrixCSV)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := engine.LoadOrTrain(ctx); err != nil {
		t.Fatalf("LoadOrTrain() after data fix error = %v", err)
	}
	if !engine.Ready() {
		t.Error("Ready() = false after data fix")
	}
}

func TestEngine_LoadOrTrain_RankTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Model.Components = 4
	engine, err := NewEngine(cfg, setupObjects(t, sampleMatrixCSV, ""), nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if err := engine.LoadOrTrain(context.Background()); !errors.Is(err, ErrTrainingFailed) {
		t.Fatalf("LoadOrTrain() error = %v, want ErrTrainingFailed", err)
	}
}

func TestEngine_Stats(t *testing.T) {
	engine := setupEngine(t)
	stats := engine.Stats()

	if !stats.ModelsLoaded {
		t.Error("ModelsLoaded = false, want true")
	}
	if stats.LoadedFromStore {
		t.Error("LoadedFromStore = true on first training run")
	}
	if stats.UserCount != 3 || stats.ProductCount != 3 {
		t.Errorf("counts = (%d, %d), want (3, 3)", stats.UserCount, stats.ProductCount)
	}
	if stats.TotalInteractions != 5 {
		t.Errorf("TotalInteractions = %d, want 5", stats.TotalInteractions)
	}
	if math.Abs(stats.MatrixDensity-5.0/9.0) > 1e-12 {
		t.Errorf("MatrixDensity = %v, want %v", stats.MatrixDensity, 5.0/9.0)
	}
	if stats.SVDComponents != 1 {
		t.Errorf("SVDComponents = %d, want 1", stats.SVDComponents)
	}
	if stats.ExplainedVarianceRatio <= 0 || stats.ExplainedVarianceRatio > 1+1e-9 {
		t.Errorf("ExplainedVarianceRatio = %v, want in (0, 1]", stats.ExplainedVarianceRatio)
	}
	if stats.ModelVersion != 1 {
		t.Errorf("ModelVersion = %d, want 1", stats.ModelVersion)
	}
	if stats.LastModelUpdate == nil || stats.TrainedAt == nil {
		t.Error("LastModelUpdate and TrainedAt must be set once loaded")
	}
}

func TestEngine_LoadOrTrain_AdoptsPersistedArtifacts(t *testing.T) {
	objects := setupObjects(t, sampleMatrixCSV, sampleFeaturesCSV)
	ctx := context.Background()

	first := newTestEngine(t, objects, nil)
	if err := first.LoadOrTrain(ctx); err != nil {
		t.Fatalf("first LoadOrTrain() error = %v", err)
	}

	second := newTestEngine(t, objects, nil)
	if err := second.LoadOrTrain(ctx); err != nil {
		t.Fatalf("second LoadOrTrain() error = %v", err)
	}

	a, b := first.Snapshot(), second.Snapshot()
	if !b.Loaded {
		t.Error("second snapshot Loaded = false, want artifacts adopted")
	}
	if !mat.Equal(a.Model.Factors.UserFactors, b.Model.Factors.UserFactors) {
		t.Error("user factors changed across load")
	}
	if !mat.Equal(a.Model.Factors.ItemFactors, b.Model.Factors.ItemFactors) {
		t.Error("item factors changed across load")
	}
	if !mat.Equal(a.Model.UserSimilarity, b.Model.UserSimilarity) {
		t.Error("user similarity changed across load")
	}
	if !mat.Equal(a.Model.ItemSimilarity, b.Model.ItemSimilarity) {
		t.Error("item similarity changed across load")
	}
}

func TestEngine_LoadOrTrain_RetrainsOnShapeChange(t *testing.T) {
	objects := setupObjects(t, sampleMatrixCSV, "")
	ctx := context.Background()

	engine := newTestEngine(t, objects, nil)
	if err := engine.LoadOrTrain(ctx); err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}

	grown := sampleMatrixCSV + "D,1,,1\n"
	if err := objects.Put(ctx, objectstore.ProcessedBucket(testRegion), objectstore.InteractionMatrixObject, []byte(grown)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	snap := engine.Snapshot()
	if snap.Loaded {
		t.Error("Loaded = true, want retrain after user count changed")
	}
	if snap.Matrix.UserCount() != 4 {
		t.Errorf("UserCount() = %d, want 4", snap.Matrix.UserCount())
	}
	if snap.Version != 2 {
		t.Errorf("Version = %d, want 2", snap.Version)
	}
}

func TestEngine_LoadOrTrain_RetrainsOnReorderedData(t *testing.T) {
	tests := []struct {
		name   string
		matrix string
	}{
		{
			name: "rows reordered",
			matrix: `user_id,X,Y,Z
C,,5,2
B,4,3,
A,5,,
`,
		},
		{
			name: "columns reordered",
			matrix: `user_id,Z,Y,X
A,,,5
B,,3,4
C,2,5,
`,
		},
		{
			name: "users renamed",
			matrix: `user_id,X,Y,Z
A,5,,
B,4,3,
D,,5,2
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := setupObjects(t, sampleMatrixCSV, "")
			ctx := context.Background()

			engine := newTestEngine(t, objects, nil)
			if err := engine.LoadOrTrain(ctx); err != nil {
				t.Fatalf("LoadOrTrain() error = %v", err)
			}

			if err := objects.Put(ctx, objectstore.ProcessedBucket(testRegion), objectstore.InteractionMatrixObject, []byte(tt.matrix)); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := engine.Refresh(ctx); err != nil {
				t.Fatalf("Refresh() error = %v", err)
			}

			adopted := engine.Snapshot()
			if adopted.Loaded {
				t.Fatal("Loaded = true, want retrain after key order changed")
			}

			fresh := newTestEngine(t, setupObjects(t, tt.matrix, ""), nil)
			if err := fresh.LoadOrTrain(ctx); err != nil {
				t.Fatalf("fresh LoadOrTrain() error = %v", err)
			}
			if !mat.EqualApprox(adopted.Model.UserSimilarity, fresh.Snapshot().Model.UserSimilarity, 1e-9) {
				t.Error("user similarity does not match a fresh training run on the same data")
			}
			if !mat.EqualApprox(adopted.Model.ItemSimilarity, fresh.Snapshot().Model.ItemSimilarity, 1e-9) {
				t.Error("item similarity does not match a fresh training run on the same data")
			}
		})
	}
}

// failingModelsStore rejects writes to the models bucket.
type failingModelsStore struct {
	objectstore.Store
}

func (f failingModelsStore) Put(ctx context.Context, bucket, key string, data []byte) error {
	if bucket == objectstore.ModelsBucket(testRegion) {
		return errors.New("disk full")
	}
	return f.Store.Put(ctx, bucket, key, data)
}

func TestEngine_LoadOrTrain_PersistFailure(t *testing.T) {
	objects := failingModelsStore{Store: setupObjects(t, sampleMatrixCSV, "")}
	engine := newTestEngine(t, objects, nil)

	err := engine.LoadOrTrain(context.Background())
	if !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("LoadOrTrain() error = %v, want ErrPersistFailed", err)
	}
	if engine.Ready() {
		t.Error("Ready() = true, want unpersisted model withheld")
	}
	if engine.Stats().LastError == "" {
		t.Error("Stats().LastError is empty after persist failure")
	}
}

func TestEngine_RefreshFailureKeepsSnapshot(t *testing.T) {
	objects := setupObjects(t, sampleMatrixCSV, "")
	ctx := context.Background()

	engine := newTestEngine(t, objects, nil)
	if err := engine.LoadOrTrain(ctx); err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}
	before := engine.Snapshot()

	if err := objects.Delete(ctx, objectstore.ProcessedBucket(testRegion), objectstore.InteractionMatrixObject); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if err := engine.Refresh(ctx); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("Refresh() error = %v, want ErrDataUnavailable", err)
	}
	if engine.Snapshot() != before {
		t.Error("snapshot replaced after failed refresh")
	}
	if _, err := engine.Recommend(ctx, "A", RecommendOptions{Count: 2}); err != nil {
		t.Errorf("Recommend() after failed refresh error = %v", err)
	}
}

func TestEngine_Retrain(t *testing.T) {
	objects := setupObjects(t, sampleMatrixCSV, "")
	ctx := context.Background()

	engine := newTestEngine(t, objects, nil)
	if err := engine.LoadOrTrain(ctx); err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}
	if err := engine.Retrain(ctx); err != nil {
		t.Fatalf("Retrain() error = %v", err)
	}
	if engine.Snapshot().Loaded {
		t.Error("Loaded = true after Retrain, want freshly trained")
	}
}

func TestEngine_OnPublish(t *testing.T) {
	engine := newTestEngine(t, setupObjects(t, sampleMatrixCSV, ""), nil)
	ctx := context.Background()

	var calls atomic.Int32
	var lastVersion atomic.Int64
	engine.OnPublish(func(s *Snapshot) {
		calls.Add(1)
		lastVersion.Store(s.Version)
	})

	if err := engine.LoadOrTrain(ctx); err != nil {
		t.Fatalf("LoadOrTrain() error = %v", err)
	}
	if err := engine.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("hook calls = %d, want 2", got)
	}
	if got := lastVersion.Load(); got != 2 {
		t.Errorf("last published version = %d, want 2", got)
	}
}

func TestEngine_RefreshInProgress(t *testing.T) {
	engine := newTestEngine(t, setupObjects(t, sampleMatrixCSV, ""), nil)

	engine.refreshMu.Lock()
	err := engine.Refresh(context.Background())
	engine.refreshMu.Unlock()

	if !errors.Is(err, ErrRefreshInProgress) {
		t.Errorf("Refresh() error = %v, want ErrRefreshInProgress", err)
	}
}

func TestLoadErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrDataUnavailable, "data_unavailable"},
		{errors.Join(ErrTrainingFailed, errors.New("svd")), "training"},
		{fmt.Errorf("%w: put", ErrPersistFailed), "persist"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		if got := loadErrorType(tt.err); got != tt.want {
			t.Errorf("loadErrorType(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
