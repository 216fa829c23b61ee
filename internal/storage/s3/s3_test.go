package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
	err     error
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestPutJSON(t *testing.T) {
	api := &fakeAPI{}
	u := &Uploader{api: api, bucket: "snapshots"}

	err := u.PutJSON(context.Background(), "books/x.json", []map[string]string{{"isbn": "1234567890"}})
	require.NoError(t, err)

	require.NotNil(t, api.put)
	assert.Equal(t, "snapshots", aws.ToString(api.put.Bucket))
	assert.Equal(t, "books/x.json", aws.ToString(api.put.Key))
	assert.Equal(t, "application/json", aws.ToString(api.put.ContentType))
	assert.Equal(t, int64(len(api.body)), aws.ToInt64(api.put.ContentLength))
	assert.JSONEq(t, `[{"isbn":"1234567890"}]`, string(api.body))
}

func TestPutJSON_Error(t *testing.T) {
	u := &Uploader{api: &fakeAPI{err: errors.New("access denied")}, bucket: "b"}
	err := u.PutJSON(context.Background(), "k", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put object k")
}

func TestDeleteObject(t *testing.T) {
	api := &fakeAPI{}
	u := &Uploader{api: api, bucket: "b"}
	require.NoError(t, u.DeleteObject(context.Background(), "books/old.json"))
	assert.Equal(t, "books/old.json", api.deleted)
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	_, err := NewUploader(context.Background(), Options{Region: "auto"})
	assert.Error(t, err)
}
