package media_storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/internal/config"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

const accessDeniedXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message><RequestId>test</RequestId></Error>`

const alreadyOwnedXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>BucketAlreadyOwnedByYou</Code><Message>Your previous request to create the named bucket succeeded</Message><RequestId>test</RequestId></Error>`

// fakeBucketAPI answers the path-style bucket calls the adapter makes
// on startup: HeadBucket, CreateBucket and PutBucketPolicy.
type fakeBucketAPI struct {
	headStatus   int
	createStatus int
	createBody   string
	policyStatus int

	createCalls atomic.Int32
	policyCalls atomic.Int32
}

func (f *fakeBucketAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodHead:
		w.WriteHeader(f.headStatus)
	case r.Method == http.MethodPut && r.URL.Query().Has("policy"):
		f.policyCalls.Add(1)
		w.WriteHeader(f.policyStatus)
		if f.policyStatus >= 400 {
			w.Write([]byte(accessDeniedXML))
		}
	case r.Method == http.MethodPut:
		f.createCalls.Add(1)
		w.WriteHeader(f.createStatus)
		if f.createBody != "" {
			w.Write([]byte(f.createBody))
		}
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newTestAdapter(t *testing.T, fake *fakeBucketAPI) (*httptest.Server, config.Config) {
	t.Helper()
	t.Setenv("AWS_ACCESS_KEY_ID", "test-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	var cfg config.Config
	cfg.Storage.Bucket = "portfolio-images"
	cfg.Storage.Region = "us-east-1"
	cfg.Storage.Endpoint = srv.URL
	return srv, cfg
}

func TestEnsureBucket_AlreadyExists(t *testing.T) {
	fake := &fakeBucketAPI{headStatus: http.StatusOK}
	_, cfg := newTestAdapter(t, fake)

	_, err := NewS3Adapter(context.Background(), cfg, logger.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, int32(0), fake.createCalls.Load())
}

func TestEnsureBucket_CreatesAndAppliesPolicy(t *testing.T) {
	fake := &fakeBucketAPI{
		headStatus:   http.StatusNotFound,
		createStatus: http.StatusOK,
		policyStatus: http.StatusOK,
	}
	_, cfg := newTestAdapter(t, fake)

	_, err := NewS3Adapter(context.Background(), cfg, logger.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, int32(1), fake.createCalls.Load())
	assert.Equal(t, int32(1), fake.policyCalls.Load())
}

func TestEnsureBucket_AlreadyOwned(t *testing.T) {
	fake := &fakeBucketAPI{
		headStatus:   http.StatusForbidden,
		createStatus: http.StatusConflict,
		createBody:   alreadyOwnedXML,
	}
	_, cfg := newTestAdapter(t, fake)

	_, err := NewS3Adapter(context.Background(), cfg, logger.NewNop())

	assert.NoError(t, err)
}

func TestEnsureBucket_CreateDenied(t *testing.T) {
	fake := &fakeBucketAPI{
		headStatus:   http.StatusNotFound,
		createStatus: http.StatusForbidden,
		createBody:   accessDeniedXML,
	}
	_, cfg := newTestAdapter(t, fake)

	_, err := NewS3Adapter(context.Background(), cfg, logger.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Manual action required")
	assert.Contains(t, err.Error(), `"portfolio-images"`)
}

func TestEnsureBucket_PolicyDenied(t *testing.T) {
	fake := &fakeBucketAPI{
		headStatus:   http.StatusNotFound,
		createStatus: http.StatusOK,
		policyStatus: http.StatusForbidden,
	}
	_, cfg := newTestAdapter(t, fake)

	_, err := NewS3Adapter(context.Background(), cfg, logger.NewNop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Manual action required: allow public read")
}

func TestUpload_PublicURLUsesEndpoint(t *testing.T) {
	fake := &fakeBucketAPI{headStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.Handle("/portfolio-images", fake)
	mux.HandleFunc("/portfolio-images/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Setenv("AWS_ACCESS_KEY_ID", "test-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret")
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var cfg config.Config
	cfg.Storage.Bucket = "portfolio-images"
	cfg.Storage.Region = "us-east-1"
	cfg.Storage.Endpoint = srv.URL

	uploader, err := NewS3Adapter(context.Background(), cfg, logger.NewNop())
	assert.NoError(t, err)

	url, err := uploader.Upload(context.Background(), strings.NewReader("png bytes"), "projects", "shot.png")
	assert.NoError(t, err)
	assert.Equal(t, srv.URL+"/portfolio-images/projects/shot.png", url)
}
