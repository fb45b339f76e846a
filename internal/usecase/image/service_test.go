package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/ownership"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
	"github.com/BruksfildServices01/vet-backoffice/internal/storage"
)

type fakeObject struct {
	info storage.ObjectInfo
	data []byte
}

type fakeStore struct {
	mu        sync.Mutex
	objects   map[string]fakeObject
	deleteErr error
	deleted   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]fakeObject{}}
}

func (f *fakeStore) put(key, contentType string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = fakeObject{info: storage.ObjectInfo{Size: int64(len(data)), ContentType: contentType}, data: data}
}

func (f *fakeStore) PresignPut(_ context.Context, key, contentType string, ttl time.Duration) (storage.PresignedRequest, error) {
	return storage.PresignedRequest{
		URL:       "https://bucket.test/" + key + "?sig=put",
		Method:    "PUT",
		Headers:   map[string]string{"Content-Type": contentType},
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string, ttl time.Duration) (storage.PresignedRequest, error) {
	return storage.PresignedRequest{URL: "https://bucket.test/" + key + "?sig=get", Method: "GET", ExpiresAt: time.Now().Add(ttl)}, nil
}

func (f *fakeStore) Head(_ context.Context, key string) (storage.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrObjectNotFound
	}
	return obj.info, nil
}

func (f *fakeStore) ReadHead(_ context.Context, key string, n int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	if int64(len(obj.data)) > n {
		return obj.data[:n], nil
	}
	return obj.data, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

type fixture struct {
	svc     *Service
	objects *fakeStore
	target  Target
	visit   Target
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()

	c := &models.Customer{UserID: 1, Name: "Ana"}
	_ = st.Customers().CreateCustomer(ctx, c)
	p := &models.Pet{CustomerID: c.ID, Name: "Rex", Species: "dog"}
	_ = st.Pets().CreatePet(ctx, p)
	v := &models.Visit{CustomerID: c.ID, PetID: p.ID, Status: "scheduled", Title: "x", ScheduledAt: time.Now()}
	if err := st.Visits().CreateVisit(ctx, v); err != nil {
		t.Fatal(err)
	}

	objects := newFakeStore()
	svc := NewService(ownership.NewChain(st.Ownership()), st.Images(), objects, nil, Options{
		MaxBytes:     1 << 20,
		ProbeEnabled: true,
		ProbeBytes:   64 << 10,
	})

	return &fixture{
		svc:     svc,
		objects: objects,
		target:  Target{UserID: 1, CustomerID: c.ID, PetID: p.ID},
		visit:   Target{UserID: 1, CustomerID: c.ID, PetID: p.ID, VisitID: v.ID},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	up, err := f.svc.UploadURL(ctx, f.target, "image/png", "rex.png")
	if err != nil {
		t.Fatalf("UploadURL: %v", err)
	}
	if !strings.HasPrefix(up.Key, storage.PetPrefix(1, f.target.CustomerID, f.target.PetID)) || !strings.HasSuffix(up.Key, ".png") {
		t.Fatalf("key = %q", up.Key)
	}
	if up.Headers["Content-Type"] != "image/png" || up.UploadURL == "" {
		t.Fatalf("upload = %+v", up)
	}

	if _, err := f.svc.Register(ctx, f.target, up.Key); !httperr.IsBusiness(err, "upload_not_found") {
		t.Fatalf("register before upload err = %v", err)
	}

	f.objects.put(up.Key, "image/png", pngBytes(t, 40, 30))

	img, err := f.svc.Register(ctx, f.target, up.Key)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if img.Width == nil || *img.Width != 40 || img.Height == nil || *img.Height != 30 {
		t.Fatalf("dimensions = %v x %v", img.Width, img.Height)
	}
	if !strings.Contains(img.URL, "sig=get") {
		t.Fatalf("url = %q", img.URL)
	}

	if _, err := f.svc.Register(ctx, f.target, up.Key); !httperr.IsBusiness(err, "image_already_registered") {
		t.Fatalf("duplicate err = %v", err)
	}

	list, err := f.svc.List(ctx, f.target)
	if err != nil || len(list) != 1 || list[0].Key != up.Key {
		t.Fatalf("list = %+v %v", list, err)
	}
}

func TestRegister_RejectsForeignKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visitKey := storage.VisitPrefix(1, f.visit.CustomerID, f.visit.PetID, f.visit.VisitID) + "a.png"
	otherUser := storage.PetPrefix(2, f.target.CustomerID, f.target.PetID) + "a.png"
	traversal := storage.PetPrefix(1, f.target.CustomerID, f.target.PetID) + "../a.png"

	for _, key := range []string{visitKey, otherUser, traversal, ""} {
		f.objects.put(key, "image/png", pngBytes(t, 1, 1))
		if _, err := f.svc.Register(ctx, f.target, key); !httperr.IsBusiness(err, "invalid_storage_key") {
			t.Errorf("key %q err = %v, want invalid_storage_key", key, err)
		}
	}

	// the visit key is fine for the visit itself
	if _, err := f.svc.Register(ctx, f.visit, visitKey); err != nil {
		t.Fatalf("visit register: %v", err)
	}
}

func TestRegister_InvalidUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prefix := storage.PetPrefix(1, f.target.CustomerID, f.target.PetID)

	f.objects.put(prefix+"doc.png", "application/pdf", []byte("%PDF"))
	f.objects.put(prefix+"huge.png", "image/png", make([]byte, (1<<20)+1))
	f.objects.put(prefix+"empty.png", "image/png", nil)

	for _, key := range []string{prefix + "doc.png", prefix + "huge.png", prefix + "empty.png"} {
		if _, err := f.svc.Register(ctx, f.target, key); !httperr.IsBusiness(err, "invalid_upload") {
			t.Errorf("%s err = %v, want invalid_upload", key, err)
		}
	}

	// undecodable but acceptable metadata is still registered
	f.objects.put(prefix+"odd.png", "image/png", []byte("not really a png"))
	img, err := f.svc.Register(ctx, f.target, prefix+"odd.png")
	if err != nil || img.Width != nil {
		t.Fatalf("odd image: %+v %v", img, err)
	}
}

func TestDelete_ProceedsWhenStorageFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := storage.PetPrefix(1, f.target.CustomerID, f.target.PetID) + "a.png"
	f.objects.put(key, "image/png", pngBytes(t, 2, 2))

	img, err := f.svc.Register(ctx, f.target, key)
	if err != nil {
		t.Fatal(err)
	}

	f.objects.deleteErr = errors.New("bucket unreachable")
	if err := f.svc.Delete(ctx, f.target, img.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(f.objects.deleted) != 1 || f.objects.deleted[0] != key {
		t.Fatalf("object delete attempts = %v", f.objects.deleted)
	}

	if list, _ := f.svc.List(ctx, f.target); len(list) != 0 {
		t.Fatalf("image still listed after delete: %+v", list)
	}
	if err := f.svc.Delete(ctx, f.target, img.ID); !httperr.IsBusiness(err, "image_not_found") {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestCrossUserImageAccess(t *testing.T) {
	f := newFixture(t)
	stranger := f.target
	stranger.UserID = 2

	if _, err := f.svc.UploadURL(context.Background(), stranger, "image/png", ""); !httperr.IsNotFound(err) {
		t.Fatalf("err = %v", err)
	}
	if _, err := f.svc.List(context.Background(), stranger); !httperr.IsNotFound(err) {
		t.Fatalf("err = %v", err)
	}
}
