package ports

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Buckets de archivos.
const (
	BucketAvatars       = "avatars"
	BucketProductPhotos = "product-photos"
	BucketInvoicePhotos = "invoice-photos"
)

// FileStorage almacenamiento de archivos subidos. Save devuelve la URL pública del objeto.
type FileStorage interface {
	Save(ctx context.Context, bucket, key string, r io.Reader) (publicURL string, err error)
	Delete(ctx context.Context, bucket, key string) error
}

// allowedImageExt extensiones aceptadas para fotos y avatares.
var allowedImageExt = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "webp": {}, "gif": {},
}

// ImageExt devuelve la extensión en minúsculas del nombre de archivo y si es una imagen aceptada.
func ImageExt(filename string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	_, ok := allowedImageExt[ext]
	return ext, ok
}

// NewObjectKey arma la clave {owner}/{aleatorio}.{ext} dentro de un bucket.
func NewObjectKey(owner, ext string) string {
	return owner + "/" + uuid.New().String() + "." + ext
}
