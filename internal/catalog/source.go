package catalog

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/dropdown/internal/errors"
)

// ObjectGetter is the subset of *s3.Client the loader uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads catalogs from files and S3.
type Loader struct {
	s3     ObjectGetter
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithS3 enables s3:// sources.
func WithS3(client ObjectGetter) LoaderOption {
	return func(l *Loader) {
		l.s3 = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader. Without WithS3, s3:// sources fail with E201.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the catalog at src. An empty src yields Sample().
func (l *Loader) Load(ctx context.Context, src string) (*Catalog, error) {
	switch {
	case src == "":
		return Sample(), nil
	case strings.HasPrefix(src, "s3://"):
		return l.loadS3(ctx, src)
	case strings.Contains(src, "://"):
		return nil, errors.New("E204").
			WithDetailf("source %q", src).
			WithSuggestion("Use a local path or s3://bucket/key")
	default:
		return l.loadFile(src)
	}
}

func (l *Loader) loadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E201").WithDetailf("open %s", path).Wrap(err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("catalog loaded", "source", path, "options", len(c.Options))
	return c, nil
}

func (l *Loader) loadS3(ctx context.Context, src string) (*Catalog, error) {
	bucket, key, err := ParseS3URI(src)
	if err != nil {
		return nil, err
	}
	if l.s3 == nil {
		return nil, errors.New("E201").
			WithDetailf("no S3 client configured for %s", src).
			WithSuggestion("Set catalog.region in dropdown.json")
	}

	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E201").WithDetailf("get %s", src).Wrap(err)
	}
	defer out.Body.Close()

	c, err := Decode(out.Body)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("catalog loaded", "source", src, "options", len(c.Options))
	return c, nil
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(src string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(src, "s3://")
	if !ok {
		return "", "", errors.New("E204").WithDetailf("source %q is not an s3:// URI", src)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.New("E204").
			WithDetailf("source %q", src).
			WithSuggestion("Use s3://bucket/key")
	}
	return bucket, key, nil
}

// NewS3Client builds an S3 client for region. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; without
// them requests are sent anonymously, which suits public buckets.
func NewS3Client(region string) *s3.Client {
	opts := s3.Options{Region: region}
	if id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); id != "" && secret != "" {
		creds := aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		))
	}
	return s3.New(opts)
}
