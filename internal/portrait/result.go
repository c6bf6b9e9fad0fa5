package portrait

import (
	"bytes"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// Result is one generated portrait. PNG is the authoritative representation;
// the decoded image view is derived on demand and memoized per instance.
type Result struct {
	Name string
	PNG  []byte
	Seed *int64

	once      sync.Once
	decoded   image.Image
	decodeErr error
}

func New(name string, png []byte, seed *int64) *Result {
	return &Result{Name: name, PNG: png, Seed: seed}
}

// Relabel copies a cached result under a new variant name. The bytes and
// seed are shared; the decode memo is not.
func (r *Result) Relabel(name string) *Result {
	return New(name, r.PNG, r.Seed)
}

func (r *Result) Image() (image.Image, error) {
	r.once.Do(func() {
		r.decoded, r.decodeErr = imaging.Decode(bytes.NewReader(r.PNG))
	})
	return r.decoded, r.decodeErr
}

func (r *Result) Bounds() (width, height int, err error) {
	img, err := r.Image()
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (r *Result) Save(path string) error {
	return os.WriteFile(path, r.PNG, 0600)
}

func (r *Result) Len() int {
	return len(r.PNG)
}
