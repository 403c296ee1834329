package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/feature/encyclopedia/usecase"
)

// fakeS3 is an in-memory bucket implementing API.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	pageSize int
	puts     []*s3.PutObjectInput
	getErr   error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, pageSize: 2}
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := aws.ToString(in.Prefix)
	var keys []string
	for k := range f.objects {
		rest, ok := strings.CutPrefix(k, prefix)
		if ok && !strings.Contains(rest, aws.ToString(in.Delimiter)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = sort.SearchStrings(keys, tok)
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[end])
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts = append(f.puts, in)
	key := aws.ToString(in.Key)
	if aws.ToString(in.IfNoneMatch) == "*" {
		if _, ok := f.objects[key]; ok {
			return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
		}
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestStore_CreateReadWrite(t *testing.T) {
	api := newFakeS3()
	s := New(api, "bucket", "/wiki/")
	ctx := context.Background()

	require.NoError(t, s.CreateFile(ctx, "entries/Go.md", []byte("gophers")))
	assert.Contains(t, api.objects, "wiki/entries/Go.md")
	assert.Equal(t, "*", aws.ToString(api.puts[0].IfNoneMatch))

	assert.ErrorIs(t, s.CreateFile(ctx, "entries/Go.md", []byte("again")), usecase.ErrFileExists)

	require.NoError(t, s.WriteFile(ctx, "entries/Go.md", []byte("edited")))
	assert.Nil(t, api.puts[len(api.puts)-1].IfNoneMatch)

	data, err := s.ReadFile(ctx, "entries/Go.md")
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))

	_, err = s.ReadFile(ctx, "entries/Missing.md")
	assert.ErrorIs(t, err, usecase.ErrFileNotFound)
}

func TestStore_ReadFile_OtherErrors(t *testing.T) {
	api := newFakeS3()
	api.getErr = errors.New("connection reset")
	s := New(api, "bucket", "")

	_, err := s.ReadFile(context.Background(), "entries/Go.md")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrFileNotFound)
}

func TestStore_ListFiles(t *testing.T) {
	api := newFakeS3()
	for _, k := range []string{"entries/A.md", "entries/B.md", "entries/C.md", "entries/nested/D.md", "other/E.md"} {
		api.objects[k] = []byte("x")
	}
	s := New(api, "bucket", "")

	names, err := s.ListFiles(context.Background(), "entries")

	require.NoError(t, err)
	assert.Equal(t, []string{"A.md", "B.md", "C.md"}, names, "all pages, direct children only")
}

func TestStore_Key(t *testing.T) {
	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{"", "entries/Go.md", "entries/Go.md"},
		{"wiki", "entries/Go.md", "wiki/entries/Go.md"},
		{"wiki", ".", "wiki"},
		{"", ".", ""},
		{"wiki", "../escape.md", "wiki/escape.md"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, New(nil, "b", tt.prefix).key(tt.path))
		})
	}
}

func TestIsPreconditionFailed(t *testing.T) {
	assert.True(t, isPreconditionFailed(&smithy.GenericAPIError{Code: "PreconditionFailed"}))
	assert.True(t, isPreconditionFailed(&smithy.GenericAPIError{Code: "ConditionalRequestConflict"}))
	assert.False(t, isPreconditionFailed(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isPreconditionFailed(errors.New("boom")))
	assert.False(t, isPreconditionFailed(nil))
}
