package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const assetsCacheControl = "public, max-age=604800, stale-while-revalidate=86400"

// AssetsWithCache serves the static files under dir with long-lived caching
// and content-hash ETags. Mount it behind http.StripPrefix so request paths
// are relative to dir. The file server answers If-None-Match from the ETag.
func AssetsWithCache(dir string) http.Handler {
	etags := hashAssets(dir)
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Vary", "Accept-Encoding")
		h.Set("Cache-Control", assetsCacheControl)
		if et, ok := etags[path.Clean("/"+r.URL.Path)]; ok {
			h.Set("ETag", et)
		}
		files.ServeHTTP(w, r)
	})
}

// hashAssets maps every file under dir, by its URL path, to a weak ETag.
func hashAssets(dir string) map[string]string {
	etags := map[string]string{}
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		if et, err := fileETag(p); err == nil {
			etags["/"+filepath.ToSlash(rel)] = et
		}
		return nil
	})
	return etags
}

func fileETag(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`, nil
}
