// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
package gemini

import (
	"context"
	"encoding/base64"

	"google.golang.org/genai"
)

// =============================================================================
// IMAGE GENERATION
// =============================================================================

// Fixed request parameters for generated chat images. The product only
// ever asks for a single square JPEG.
const (
	imageCount       = 1
	imageMIMEType    = "image/jpeg"
	imageAspectRatio = "1:1"
)

// GeneratedImage is an inline image payload returned by the gateway,
// usable directly for display and for saving to disk. No intermediate
// storage is involved.
type GeneratedImage struct {
	MIMEType string
	Data     []byte
}

// DataReference returns the image as an inline base64 data reference
// suitable for direct display.
func (g *GeneratedImage) DataReference() string {
	return "data:" + g.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(g.Data)
}

// Size returns the payload size in bytes.
func (g *GeneratedImage) Size() int {
	return len(g.Data)
}

// GenerateImage requests a single image for the prompt. A gateway response
// with zero images is a hard failure (ErrNoImages); a rejected prompt or
// transport failure is reported as a ClientError.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages: imageCount,
		OutputMIMEType: imageMIMEType,
		AspectRatio:    imageAspectRatio,
	}

	resp, err := c.api.Models.GenerateImages(ctx, c.config.ImageModel, prompt, config)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to generate image, the model may have refused the prompt",
			Cause:   err,
		}
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImages
	}

	img := resp.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return nil, ErrNoImages
	}

	mime := img.MIMEType
	if mime == "" {
		mime = imageMIMEType
	}
	return &GeneratedImage{MIMEType: mime, Data: img.ImageBytes}, nil
}
