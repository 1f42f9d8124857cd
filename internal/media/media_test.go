package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-queue/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeToWebPShrinksLargeImages(t *testing.T) {
	out, err := NormalizeToWebP(pngBytes(t, 2400, 600))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestNormalizeToWebPKeepsSmallImages(t *testing.T) {
	out, err := NormalizeToWebP(pngBytes(t, 40, 30))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
}

func TestNormalizeToWebPRejectsGarbage(t *testing.T) {
	_, err := NormalizeToWebP([]byte("not an image"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3UploaderUpload(t *testing.T) {
	p := &fakePutter{}
	u := &S3Uploader{client: p, bucket: "salons", publicBaseURL: "https://cdn.test"}

	url, err := u.Upload(context.Background(), "salons/s1/a.webp", []byte("data"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/salons/s1/a.webp", url)
	assert.Equal(t, "salons", *p.in.Bucket)
	assert.Equal(t, "image/webp", *p.in.ContentType)
	assert.Equal(t, []byte("data"), p.body)
}

func TestSalonImageKey(t *testing.T) {
	k := SalonImageKey("s1")
	assert.True(t, strings.HasPrefix(k, "salons/s1/"))
	assert.True(t, strings.HasSuffix(k, ".webp"))
	assert.NotEqual(t, k, SalonImageKey("s1"))
}
