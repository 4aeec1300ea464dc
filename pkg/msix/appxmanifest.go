// Package msix reads package identity out of MSIX packages. An MSIX
// package is a zip archive carrying an AppxManifest.xml whose Identity
// element names the package.
package msix

import (
	"archive/zip"
	"io"

	"github.com/beevik/etree"

	"github.com/arthur-debert/getpkg/pkg/errors"
)

// ManifestFileName is the manifest entry inside an MSIX package
const ManifestFileName = "AppxManifest.xml"

// Identity is the package identity declared by an AppxManifest
type Identity struct {
	Name      string
	Publisher string
	Version   string
}

// ParseAppxManifest extracts the package identity from AppxManifest.xml content
func ParseAppxManifest(data []byte) (Identity, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Identity{}, errors.Wrap(err, errors.ErrManifestParse, "malformed AppxManifest.xml")
	}

	pkg := doc.SelectElement("Package")
	if pkg == nil {
		return Identity{}, errors.New(errors.ErrManifestInvalid, "AppxManifest.xml has no Package element")
	}
	identity := pkg.SelectElement("Identity")
	if identity == nil {
		return Identity{}, errors.New(errors.ErrManifestInvalid, "AppxManifest.xml has no Identity element")
	}

	id := Identity{
		Name:      identity.SelectAttrValue("Name", ""),
		Publisher: identity.SelectAttrValue("Publisher", ""),
		Version:   identity.SelectAttrValue("Version", ""),
	}
	if id.Name == "" {
		return Identity{}, errors.New(errors.ErrManifestInvalid, "AppxManifest.xml Identity has no Name")
	}
	return id, nil
}

// ReadIdentity opens an MSIX package file and returns its identity
func ReadIdentity(path string) (Identity, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return Identity{}, errors.Wrapf(err, errors.ErrManifestParse, "failed to open MSIX package %s", path)
	}
	defer func() { _ = archive.Close() }()

	for _, entry := range archive.File {
		if entry.Name != ManifestFileName {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return Identity{}, errors.Wrapf(err, errors.ErrManifestParse, "failed to open %s in %s", ManifestFileName, path)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return Identity{}, errors.Wrapf(err, errors.ErrManifestParse, "failed to read %s in %s", ManifestFileName, path)
		}
		return ParseAppxManifest(data)
	}

	return Identity{}, errors.Newf(errors.ErrManifestInvalid, "MSIX package %s has no %s", path, ManifestFileName)
}
