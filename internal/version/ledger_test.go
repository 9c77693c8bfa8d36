package version

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/postforge/postforge/internal/models"
)

// fakeVersionStore is an in-memory Store
type fakeVersionStore struct {
	versions map[string][]*models.PostVersion
}

func newFakeVersionStore() *fakeVersionStore {
	return &fakeVersionStore{versions: make(map[string][]*models.PostVersion)}
}

func (s *fakeVersionStore) MaxVersion(_ context.Context, postID string) (int, error) {
	max := 0
	for _, v := range s.versions[postID] {
		if v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max, nil
}

func (s *fakeVersionStore) Create(_ context.Context, version *models.PostVersion) error {
	copied := *version
	s.versions[version.PostID] = append(s.versions[version.PostID], &copied)
	return nil
}

func (s *fakeVersionStore) GetByNumber(_ context.Context, postID string, versionNumber int) (*models.PostVersion, error) {
	for _, v := range s.versions[postID] {
		if v.VersionNumber == versionNumber {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeVersionStore) ListByPost(_ context.Context, postID string) ([]*models.PostVersion, error) {
	list := append([]*models.PostVersion(nil), s.versions[postID]...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].VersionNumber > list[j].VersionNumber
	})
	return list, nil
}

func (s *fakeVersionStore) DeleteBelow(_ context.Context, postID string, versionNumber int) (int64, error) {
	var kept []*models.PostVersion
	var removed int64
	for _, v := range s.versions[postID] {
		if v.VersionNumber < versionNumber {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	s.versions[postID] = kept
	return removed, nil
}

// fakePostStore is an in-memory PostStore
type fakePostStore struct {
	posts map[string]*models.Post
}

func (s *fakePostStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) Update(_ context.Context, post *models.Post) error {
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

// fakePlanStore is an in-memory PlanStore
type fakePlanStore struct {
	plans map[string]*models.Plan
	fail  bool
}

func (s *fakePlanStore) GetByTier(_ context.Context, tier string) (*models.Plan, error) {
	if s.fail {
		return nil, errors.New("storage unavailable")
	}
	return s.plans[tier], nil
}

func newTestLedger() (*Ledger, *fakeVersionStore, *fakePostStore, *fakePlanStore) {
	store := newFakeVersionStore()
	posts := &fakePostStore{posts: map[string]*models.Post{
		"post-1": {ID: "post-1", Topic: "ai", Tone: "founder", Content: "live", PlanTier: models.PlanTierFree},
	}}
	plans := &fakePlanStore{plans: map[string]*models.Plan{
		models.PlanTierFree: {Tier: models.PlanTierFree, VersionLimit: 5, HashtagLimit: 5},
	}}
	return NewLedger(store, posts, plans), store, posts, plans
}

func TestCreateVersionMonotonic(t *testing.T) {
	ctx := context.Background()
	ledger, _, _, _ := newTestLedger()

	for i, content := range []string{"first", "second", "third"} {
		v, err := ledger.CreateVersion(ctx, "post-1", content, "", nil, models.ChangeTypeRegenerate, "")
		if err != nil {
			t.Fatalf("CreateVersion() error: %v", err)
		}
		if v.VersionNumber != i+1 {
			t.Errorf("Expected version %d, got %d", i+1, v.VersionNumber)
		}
	}
}

func TestRollbackAppendsNewVersion(t *testing.T) {
	ctx := context.Background()
	ledger, store, posts, _ := newTestLedger()

	for _, content := range []string{"first", "second", "third"} {
		if _, err := ledger.CreateVersion(ctx, "post-1", content, "", nil, models.ChangeTypeRefine, ""); err != nil {
			t.Fatalf("CreateVersion() error: %v", err)
		}
	}

	rolled, err := ledger.Rollback(ctx, "post-1", 1)
	if err != nil {
		t.Fatalf("Rollback() error: %v", err)
	}

	if rolled.VersionNumber != 4 {
		t.Errorf("Rollback should append version 4, got %d", rolled.VersionNumber)
	}
	if rolled.Content != "first" {
		t.Errorf("Rolled-back version should carry version 1 content, got %q", rolled.Content)
	}

	// Version 1 itself is unchanged
	v1, err := store.GetByNumber(ctx, "post-1", 1)
	if err != nil || v1 == nil {
		t.Fatalf("Version 1 should still exist, err=%v", err)
	}
	if v1.Content != "first" {
		t.Errorf("Version 1 must not be mutated, got %q", v1.Content)
	}

	// Live post now carries the rolled-back content
	post, _ := posts.GetByID(ctx, "post-1")
	if post.Content != "first" {
		t.Errorf("Live post should carry rolled-back content, got %q", post.Content)
	}
}

func TestRollbackToMissingVersionFails(t *testing.T) {
	ctx := context.Background()
	ledger, _, _, _ := newTestLedger()

	if _, err := ledger.CreateVersion(ctx, "post-1", "only", "", nil, models.ChangeTypeInitial, ""); err != nil {
		t.Fatalf("CreateVersion() error: %v", err)
	}

	_, err := ledger.Rollback(ctx, "post-1", 9)
	if !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("Expected ErrVersionNotFound, got: %v", err)
	}
}

func TestEnforceRetention(t *testing.T) {
	ctx := context.Background()
	ledger, store, _, _ := newTestLedger()

	for i := 0; i < 8; i++ {
		if _, err := ledger.CreateVersion(ctx, "post-1", "v", "", nil, models.ChangeTypeRefine, ""); err != nil {
			t.Fatalf("CreateVersion() error: %v", err)
		}
	}

	if err := ledger.EnforceRetention(ctx, "post-1", 5); err != nil {
		t.Fatalf("EnforceRetention() error: %v", err)
	}

	list, _ := store.ListByPost(ctx, "post-1")
	if len(list) != 5 {
		t.Fatalf("Expected 5 surviving versions, got %d", len(list))
	}
	// Newest-first: 8 down to 4
	for i, want := range []int{8, 7, 6, 5, 4} {
		if list[i].VersionNumber != want {
			t.Errorf("Expected version %d at position %d, got %d", want, i, list[i].VersionNumber)
		}
	}
}

func TestEnforceRetentionUnderLimitIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger, store, _, _ := newTestLedger()

	for i := 0; i < 3; i++ {
		ledger.CreateVersion(ctx, "post-1", "v", "", nil, models.ChangeTypeRefine, "")
	}

	if err := ledger.EnforceRetention(ctx, "post-1", 5); err != nil {
		t.Fatalf("EnforceRetention() error: %v", err)
	}
	list, _ := store.ListByPost(ctx, "post-1")
	if len(list) != 3 {
		t.Errorf("Retention under the limit must not delete anything, got %d", len(list))
	}
}

func TestApplyPlanRetention(t *testing.T) {
	ctx := context.Background()
	ledger, store, _, plans := newTestLedger()

	for i := 0; i < 7; i++ {
		ledger.CreateVersion(ctx, "post-1", "v", "", nil, models.ChangeTypeRefine, "")
	}

	if err := ledger.ApplyPlanRetention(ctx, "post-1"); err != nil {
		t.Fatalf("ApplyPlanRetention() error: %v", err)
	}
	list, _ := store.ListByPost(ctx, "post-1")
	if len(list) != 5 {
		t.Errorf("Expected free-plan limit of 5 to apply, got %d versions", len(list))
	}

	// Plan lookup failures are hard errors
	plans.fail = true
	if err := ledger.ApplyPlanRetention(ctx, "post-1"); err == nil {
		t.Error("Expected plan lookup failure to propagate")
	}

	plans.fail = false
	plans.plans = map[string]*models.Plan{}
	if err := ledger.ApplyPlanRetention(ctx, "post-1"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("Expected ErrPlanNotFound for missing plan, got: %v", err)
	}
}
