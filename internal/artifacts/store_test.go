package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/report"
	"github.com/deluair/BD-publicfinance-simulation/internal/retry"
)

func TestSanitizeKey(t *testing.T) {
	for _, bad := range []string{"", "  ", "/abs", "../up", "a/../../b"} {
		_, err := sanitizeKey(bad)
		assert.Error(t, err, bad)
	}
	k, err := sanitizeKey("runs//abc/ledger.csv")
	require.NoError(t, err)
	assert.Equal(t, "runs/abc/ledger.csv", k)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", contentType("ledger.csv"))
	assert.Equal(t, "text/html; charset=utf-8", contentType("REPORT.HTML"))
	assert.Equal(t, "application/octet-stream", contentType("blob.bin"))
}

func TestFSStorePutOverwritesAndLists(t *testing.T) {
	root := t.TempDir()
	s, err := NewFSStore(root)
	require.NoError(t, err)

	info, err := s.Put(t.Context(), "run-1/ledger.csv", strings.NewReader("a,b\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.True(t, strings.HasPrefix(info.URL, "file://"))

	_, err = s.Put(t.Context(), "run-1/ledger.csv", strings.NewReader("a,b,c\n"), "text/csv")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, "run-1", "ledger.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n", string(data))

	_, err = s.Put(t.Context(), "run-2/report.md", strings.NewReader("# x"), "")
	require.NoError(t, err)

	all, err := s.List(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "run-1/ledger.csv", all[0].Key)

	only, err := s.List(t.Context(), "run-2/")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "text/markdown; charset=utf-8", only[0].ContentType)

	_, err = s.Put(t.Context(), "../escape", strings.NewReader("x"), "")
	assert.Error(t, err)
}

// fakeS3 serves the subset of the S3 REST API the store uses.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	switch {
	case req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2":
		prefix := req.URL.Query().Get("prefix")
		var keys []string
		for k := range f.objects {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2026-01-01T00:00:00Z</LastModified></Contents>", k, len(f.objects[k]))
		}
		b.WriteString("</ListBucketResult>")
		return respond(http.StatusOK, b.String()), nil
	case req.Method == http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		f.objects[key] = body
		return respond(http.StatusOK, ""), nil
	}
	return respond(http.StatusNotImplemented, ""), nil
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

func newFakeS3Store(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://s3.test.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return newS3Store(client, "reports"), fake
}

func TestS3StorePutAndList(t *testing.T) {
	s, fake := newFakeS3Store(t)
	assert.Equal(t, config.ArtifactS3, s.Driver())

	info, err := s.Put(t.Context(), "runs/r1/ledger.csv", strings.NewReader("Year,GDP\n2025,1000\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/runs/r1/ledger.csv", info.URL)
	assert.Equal(t, int64(20), info.Size)
	assert.Equal(t, "Year,GDP\n2025,1000\n", string(fake.objects["runs/r1/ledger.csv"]))

	_, err = s.Put(t.Context(), "runs/r2/report.md", strings.NewReader("# r2"), "")
	require.NoError(t, err)

	infos, err := s.List(t.Context(), "runs/r1/")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "runs/r1/ledger.csv", infos[0].Key)
	assert.Equal(t, int64(20), infos[0].Size)
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(t.Context(), S3Config{})
	assert.Error(t, err)
}

func TestOpenSelectsDriver(t *testing.T) {
	s, err := Open(t.Context(), config.ArtifactConfig{Driver: config.ArtifactNone})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(t.Context(), config.ArtifactConfig{Driver: config.ArtifactFS, Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, config.ArtifactFS, s.Driver())

	_, err = Open(t.Context(), config.ArtifactConfig{Driver: "ftp"})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))
}

func TestUploaderUploadsReportsAndJoinsFailures(t *testing.T) {
	src := t.TempDir()
	csvPath := filepath.Join(src, "ledger.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Year\n2025\n"), 0o600))

	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	u := &Uploader{Store: store, Prefix: "fiscalsim"}

	infos, err := u.Upload(t.Context(), "run-9", []report.Artifact{
		{Format: config.FormatCSV, Path: csvPath},
		{Format: config.FormatHTML, Path: filepath.Join(src, "missing.html")},
	})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryArtifact, ferrors.GetCategory(err))
	require.Len(t, infos, 1)
	assert.Equal(t, "fiscalsim/run-9/ledger.csv", infos[0].Key)
	assert.Equal(t, "text/csv; charset=utf-8", infos[0].ContentType)
}

type flakyStore struct {
	Store
	failures int
	calls    int
}

func (f *flakyStore) Put(ctx context.Context, key string, r io.Reader, ct string) (Info, error) {
	f.calls++
	if f.calls <= f.failures {
		return Info{}, fmt.Errorf("transient failure %d", f.calls)
	}
	return f.Store.Put(ctx, key, r, ct)
}

func TestUploaderRetriesTransientFailures(t *testing.T) {
	src := t.TempDir()
	csvPath := filepath.Join(src, "ledger.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Year\n2025\n"), 0o600))

	base, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	store := &flakyStore{Store: base, failures: 2}
	u := &Uploader{
		Store: store,
		Retry: retry.NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 2),
	}

	infos, err := u.Upload(t.Context(), "run-r", []report.Artifact{{Format: config.FormatCSV, Path: csvPath}})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 3, store.calls)
	assert.Equal(t, int64(len("Year\n2025\n")), infos[0].Size)
}
