package export

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tidwall/gjson"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/store"
)

func testPanel(t *testing.T) (*store.Store, string) {
	t.Helper()
	s := store.New()
	t.Cleanup(s.Close)
	tree := control.NewTree().
		Set("opacity", []float64{0.8, 0, 1}).
		Set("enter", control.Spring(0.3, 0.2)).
		Set("shadow", control.NewTree().
			Set("blur", 24).
			Set("offset", control.NewTree().Set("0", 1)))
	s.RegisterPanel("card", "Card", tree)
	return s, "card"
}

func TestDocument(t *testing.T) {
	s, id := testPanel(t)
	s.UpdateValue(id, "shadow.blur", 30.0)
	presetID, _ := s.SavePreset(id, "Bold")
	s.UpdateMode(id, "enter", control.ModePhysics)

	p, _ := s.Panel(id)
	doc, err := Document(p, s.Presets(id), s.Resolve(id))
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if !gjson.ValidBytes(doc) {
		t.Fatalf("invalid JSON: %s", doc)
	}
	r := gjson.ParseBytes(doc)

	checks := map[string]any{
		"panel.id":                     "card",
		"panel.name":                   "Card",
		"panel.activePresetId":         presetID,
		"values.opacity":               0.8,
		"values.shadow.blur":           30.0,
		"values.enter.visualDuration":  0.3,
		"modes.enter":                  "physics",
		"resolved.shadow.blur":         30.0,
		"presets.0.name":               "Bold",
		"presets.0.values.shadow.blur": 30.0,
		"presets.0.modes.enter":        "physics",
		"presets.#":                    1.0,
	}
	for path, want := range checks {
		got := r.Get(path).Value()
		if got != want {
			t.Errorf("%s = %v, want %v", path, got, want)
		}
	}

	if !r.Get("values.shadow.offset").IsObject() {
		t.Errorf("numeric keys must stay object keys: %s", r.Get("values.shadow").Raw)
	}
}

func TestDocumentEmpty(t *testing.T) {
	doc, err := Document(store.Panel{ID: "x"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := gjson.ParseBytes(doc)
	if !r.Get("values").IsObject() || !r.Get("presets").IsArray() || !r.Get("resolved").IsObject() {
		t.Errorf("document = %s", doc)
	}
	if r.Get("panel.activePresetId").Exists() {
		t.Error("activePresetId should be omitted")
	}
}

func TestNest(t *testing.T) {
	got, err := Nest(map[string]string{"a.b": "1", "a.c": "2", "d": "3", "e*f": "4"})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"a":{"b":"1","c":"2"},"d":"3","e*f":"4"}`; string(got) != want {
		t.Errorf("Nest = %s, want %s", got, want)
	}
}

func TestKey(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	if got, want := Key("card", at), "card/20260304T040607Z.json"; got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}

func TestDiskSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink, err := NewDiskSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Put(context.Background(), "card/a.json", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "card", "a.json"))
	if err != nil || string(data) != `{"a":1}` {
		t.Errorf("file = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "card", "a.json.tmp")); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	for _, key := range []string{"../escape.json", "/abs.json", "."} {
		var de *errors.DialError
		if err := sink.Put(context.Background(), key, nil); !stderrors.As(err, &de) || de.Code != "D161" {
			t.Errorf("Put(%q) error = %v, want D161", key, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Put(ctx, "b.json", nil); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Put with cancelled context = %v", err)
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink(t *testing.T) {
	fake := &fakeS3{}
	sink := NewS3Sink(fake, "bucket", "dialkit/")

	if err := sink.Put(context.Background(), "card/a.json", []byte(`{}`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if *fake.input.Bucket != "bucket" || *fake.input.Key != "dialkit/card/a.json" {
		t.Errorf("input = %s/%s", *fake.input.Bucket, *fake.input.Key)
	}
	if *fake.input.ContentType != "application/json" || string(fake.body) != `{}` {
		t.Errorf("content = %s %q", *fake.input.ContentType, fake.body)
	}

	fake.err = stderrors.New("denied")
	err := sink.Put(context.Background(), "x.json", nil)
	var de *errors.DialError
	if !stderrors.As(err, &de) || de.Code != "D161" || !stderrors.Is(err, fake.err) {
		t.Errorf("Put error = %v", err)
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); err == nil {
		t.Error("expected error without credentials")
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials(context.Background())
	if err != nil || creds.AccessKeyID != "id" || creds.SecretAccessKey != "secret" {
		t.Errorf("creds = %+v, %v", creds, err)
	}

	if c := NewS3Client(S3ClientOptions{Region: "us-east-1", Endpoint: "http://localhost:9000", PathStyle: true}); c == nil {
		t.Error("NewS3Client returned nil")
	}
}
