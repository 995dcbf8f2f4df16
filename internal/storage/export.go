package storage

import (
	"encoding/json"
	"fmt"
	"path"

	"brandforge/internal/domain"
	"brandforge/pkg/zip"
)

// ManifestName is the package metadata entry written next to the images.
const ManifestName = "package.json"

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// AssetKey returns the relative key an asset's final image is stored under.
func AssetKey(a domain.GeneratedAsset) string {
	return path.Join(string(a.Type), a.Name+"."+extension(a.Image))
}

func extension(img *domain.Image) string {
	if img != nil {
		if e, ok := extensions[img.MIMEType]; ok {
			return e
		}
	}
	return "png"
}

// Manifest returns the package as indented JSON with every image payload
// stripped, so the manifest stays small and the files carry the bytes.
func Manifest(pkg *domain.AssetPackage) ([]byte, error) {
	if pkg == nil {
		return nil, fmt.Errorf("storage: nil package")
	}
	clone := *pkg
	clone.Assets = make([]domain.GeneratedAsset, len(pkg.Assets))
	for i, a := range pkg.Assets {
		a.Image = withoutData(a.Image)
		history := make([]domain.AssetIteration, len(a.IterationHistory))
		for j, it := range a.IterationHistory {
			it.Image = withoutData(it.Image)
			history[j] = it
		}
		a.IterationHistory = history
		clone.Assets[i] = a
	}
	data, err := json.MarshalIndent(clone, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage: encode manifest: %w", err)
	}
	return data, nil
}

func withoutData(img *domain.Image) *domain.Image {
	if img == nil {
		return nil
	}
	c := *img
	c.Data = nil
	return &c
}

// Entries lists one archive entry per asset with an image, followed by the
// manifest.
func Entries(pkg *domain.AssetPackage) ([]zip.Asset, error) {
	manifest, err := Manifest(pkg)
	if err != nil {
		return nil, err
	}
	out := make([]zip.Asset, 0, len(pkg.Assets)+1)
	for _, a := range pkg.Assets {
		if a.Image == nil || len(a.Image.Data) == 0 {
			continue
		}
		out = append(out, zip.Asset{Filename: AssetKey(a), MIME: a.Image.MIMEType, Data: a.Image.Data})
	}
	out = append(out, zip.Asset{Filename: ManifestName, MIME: "application/json", Data: manifest})
	return out, nil
}
