package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewDirSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	loc, err := sink.Publish(context.Background(), "demo/tabs.html", []byte("<p>hi</p>"))
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if want := filepath.Join(dir, "demo", "tabs.html"); loc != want {
		t.Errorf("Publish() = %q, want %q", loc, want)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "<p>hi</p>" {
		t.Errorf("file = %q, %v", data, err)
	}
	if _, err := os.Stat(loc + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestRejectsEscapingNames(t *testing.T) {
	sink, err := NewDirSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", "../x.html", "a/../../x.html"} {
		if _, err := sink.Publish(context.Background(), name, nil); err == nil {
			t.Errorf("Publish(%q) should fail", name)
		}
	}
}

func TestS3Sink(t *testing.T) {
	fake := &fakeS3{}
	sink := NewS3Sink(fake, "pages", "demo/")

	loc, err := sink.Publish(context.Background(), "/index.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if loc != "s3://pages/demo/index.html" {
		t.Errorf("Publish() = %q", loc)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(fake.inputs))
	}
	in := fake.inputs[0]
	if aws.ToString(in.Bucket) != "pages" || aws.ToString(in.Key) != "demo/index.html" {
		t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != ContentType {
		t.Errorf("ContentType = %q", aws.ToString(in.ContentType))
	}
	if fake.bodies[0] != "<html></html>" {
		t.Errorf("body = %q", fake.bodies[0])
	}
}

func TestS3SinkError(t *testing.T) {
	denied := errors.New("access denied")
	sink := NewS3Sink(&fakeS3{err: denied}, "pages", "")
	if _, err := sink.Publish(context.Background(), "index.html", nil); !errors.Is(err, denied) {
		t.Errorf("Publish() error = %v, want wrapped access denied", err)
	}
}

func TestMulti(t *testing.T) {
	fake := &fakeS3{}
	dir, err := NewDirSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := Multi{dir, NewS3Sink(fake, "b", "")}

	loc, err := m.Publish(context.Background(), "p.html", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.inputs) != 1 || loc == "" {
		t.Errorf("Publish() = %q with %d uploads", loc, len(fake.inputs))
	}
}
