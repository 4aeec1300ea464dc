// Package downloader fetches installer files into the local cache and
// records the expected/actual checksum pair for the workflow to verify.
package downloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
)

// HashPair couples the manifest-declared checksum with the checksum of
// the downloaded bytes
type HashPair struct {
	Expected []byte
	Actual   []byte
}

// Matches reports whether the actual checksum satisfies the expected
// one. A manifest without a declared checksum expects nothing.
func (h HashPair) Matches() bool {
	if len(h.Expected) == 0 {
		return true
	}
	return hex.EncodeToString(h.Expected) == hex.EncodeToString(h.Actual)
}

// Downloader fetches a URL into a destination file
type Downloader interface {
	// Download fetches url into dest and returns the checksum pair.
	// expectedSha256 is the manifest-declared hex checksum, or ""
	Download(ctx context.Context, url, dest, expectedSha256 string) (HashPair, error)
}

// HTTPDownloader is the production Downloader
type HTTPDownloader struct {
	Client *http.Client
}

// New creates an HTTPDownloader with a sane default timeout
func New() *HTTPDownloader {
	return &HTTPDownloader{
		Client: &http.Client{Timeout: 15 * time.Minute},
	}
}

// Download fetches url into dest, hashing the stream as it lands
func (d *HTTPDownloader) Download(ctx context.Context, url, dest, expectedSha256 string) (HashPair, error) {
	logger := logging.GetLogger("downloader")
	done := logging.LogOperationStart(logger, "download "+url)
	defer done()

	var expected []byte
	if expectedSha256 != "" {
		var err error
		expected, err = hex.DecodeString(expectedSha256)
		if err != nil {
			return HashPair{}, errors.Wrapf(err, errors.ErrManifestInvalid,
				"manifest Sha256 %q is not valid hex", expectedSha256)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return HashPair{}, errors.Wrapf(err, errors.ErrDownloadFailed, "invalid installer URL %s", url)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return HashPair{}, errors.Wrapf(err, errors.ErrDownloadFailed, "failed to download %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return HashPair{}, errors.Newf(errors.ErrDownloadFailed,
			"download of %s returned status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return HashPair{}, errors.Wrapf(err, errors.ErrDownloadFailed, "failed to create %s", filepath.Dir(dest))
	}

	file, err := os.Create(dest)
	if err != nil {
		return HashPair{}, errors.Wrapf(err, errors.ErrDownloadFailed, "failed to create %s", dest)
	}
	defer func() { _ = file.Close() }()

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(file, hasher), resp.Body)
	if err != nil {
		return HashPair{}, errors.Wrapf(err, errors.ErrDownloadFailed, "failed while downloading %s", url)
	}

	pair := HashPair{Expected: expected, Actual: hasher.Sum(nil)}
	logger.Debug().
		Str("url", url).
		Str("dest", dest).
		Int64("bytes", written).
		Str("sha256", hex.EncodeToString(pair.Actual)).
		Msg("Downloaded installer")

	return pair, nil
}

// Sha256Hex returns the hex SHA-256 of a byte slice; fixtures use it
// to declare matching checksums
func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
