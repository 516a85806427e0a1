package catalog

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/dropdown/internal/errors"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	calls   []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, stderrors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCurrent string
		wantValues  []string
		wantCode    string
	}{
		{
			name:       "list",
			input:      `[{"value":"a","label":"A"},{"value":"b","label":"B"}]`,
			wantValues: []string{"a", "b"},
		},
		{
			name:        "object",
			input:       ` {"current":"b","options":[{"value":"a","label":"A"},{"value":"b","label":"B"}]}`,
			wantCurrent: "b",
			wantValues:  []string{"a", "b"},
		},
		{
			name:        "unknown current is allowed",
			input:       `{"current":"z","options":[{"value":"a","label":"A"}]}`,
			wantCurrent: "z",
			wantValues:  []string{"a"},
		},
		{
			name:       "empty list",
			input:      `[]`,
			wantValues: []string{},
		},
		{name: "empty input", input: "  ", wantCode: "E202"},
		{name: "scalar", input: `"a"`, wantCode: "E202"},
		{name: "broken json", input: `[{"value":`, wantCode: "E202"},
		{name: "empty value", input: `[{"value":"","label":"None"}]`, wantCode: "E202"},
		{name: "duplicate", input: `[{"value":"a","label":"A"},{"value":"a","label":"Again"}]`, wantCode: "E203"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.input))
			if tt.wantCode != "" {
				if errors.CodeOf(err) != tt.wantCode {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Current != tt.wantCurrent {
				t.Errorf("Current = %q, want %q", c.Current, tt.wantCurrent)
			}
			if got := c.Values(); !slices.Equal(got, tt.wantValues) {
				t.Errorf("Values = %v, want %v", got, tt.wantValues)
			}
		})
	}
}

func TestDecodeTooLarge(t *testing.T) {
	r := strings.NewReader("[" + strings.Repeat(" ", MaxSize) + "]")
	if _, err := Decode(r); errors.CodeOf(err) != "E202" {
		t.Errorf("err = %v, want E202", err)
	}
}

func TestSampleIsValid(t *testing.T) {
	c := Sample()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Current == "" || len(c.Options) == 0 {
		t.Errorf("Sample = %v", c)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.json")
	if err := os.WriteFile(path, []byte(`[{"value":"a","label":"Apple"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	c, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Options) != 1 || c.Options[0].Label != "Apple" {
		t.Errorf("Options = %+v", c.Options)
	}

	_, err = l.Load(context.Background(), filepath.Join(dir, "missing.json"))
	if errors.CodeOf(err) != "E201" {
		t.Errorf("missing file: err = %v, want E201", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("missing file error should wrap os.ErrNotExist")
	}
}

func TestLoadEmptySource(t *testing.T) {
	c, err := NewLoader().Load(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(c.Values(), Sample().Values()) {
		t.Errorf("Values = %v, want sample", c.Values())
	}
}

func TestLoadUnsupportedScheme(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), "https://example.com/fruits.json")
	if errors.CodeOf(err) != "E204" {
		t.Errorf("err = %v, want E204", err)
	}
}

func TestLoadS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"ui-assets/catalogs/fruits.json": `{"current":"b","options":[{"value":"a","label":"A"},{"value":"b","label":"B"}]}`,
	}}
	l := NewLoader(WithS3(fake))

	c, err := l.Load(context.Background(), "s3://ui-assets/catalogs/fruits.json")
	if err != nil {
		t.Fatal(err)
	}
	if c.Current != "b" || len(c.Options) != 2 {
		t.Errorf("catalog = %v", c)
	}
	if !slices.Equal(fake.calls, []string{"ui-assets/catalogs/fruits.json"}) {
		t.Errorf("calls = %v", fake.calls)
	}
}

func TestLoadS3Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewLoader().Load(ctx, "s3://b/k.json"); errors.CodeOf(err) != "E201" {
		t.Errorf("no client: err = %v, want E201", err)
	}

	boom := stderrors.New("access denied")
	l := NewLoader(WithS3(&fakeS3{err: boom}))
	_, err := l.Load(ctx, "s3://b/k.json")
	if errors.CodeOf(err) != "E201" || !stderrors.Is(err, boom) {
		t.Errorf("get failure: err = %v, want E201 wrapping cause", err)
	}

	l = NewLoader(WithS3(&fakeS3{objects: map[string]string{"b/k.json": "nope"}}))
	if _, err := l.Load(ctx, "s3://b/k.json"); errors.CodeOf(err) != "E202" {
		t.Errorf("bad body: err = %v, want E202", err)
	}
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		src     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://bucket/key.json", "bucket", "key.json", false},
		{"s3://bucket/nested/path/key.json", "bucket", "nested/path/key.json", false},
		{"s3://bucket", "", "", true},
		{"s3://bucket/", "", "", true},
		{"s3:///key", "", "", true},
		{"file:///tmp/x", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if errors.CodeOf(err) != "E204" {
					t.Errorf("code = %q, want E204", errors.CodeOf(err))
				}
				return
			}
			if bucket != tt.bucket || key != tt.key {
				t.Errorf("got %q, %q; want %q, %q", bucket, key, tt.bucket, tt.key)
			}
		})
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	client := NewS3Client("eu-west-1")
	opts := client.Options()
	if opts.Region != "eu-west-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" {
		t.Errorf("AccessKeyID = %q", creds.AccessKeyID)
	}
}

func TestClosest(t *testing.T) {
	c := Sample()

	tests := []struct {
		value string
		want  string
		ok    bool
	}{
		{"banan", "banana", true},
		{"cherri", "cherry", true},
		{"apple", "apple", true},
		{"z", "", false},
		{"grape", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := c.Closest(tt.value)
			if ok != tt.ok || got.Value != tt.want {
				t.Errorf("Closest(%q) = %q, %v; want %q, %v", tt.value, got.Value, ok, tt.want, tt.ok)
			}
		})
	}
}
