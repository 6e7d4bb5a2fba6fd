package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/log"
	"github.com/spf13/viper"
)

// FFprobe inspects files with the ffprobe executable.
type FFprobe struct {
	Path string

	// run executes ffprobe and returns its standard output. Replaced in tests.
	run func(ctx context.Context, path string, args ...string) ([]byte, error)
}

// NewFFprobe creates an inspector using the configured ffprobe executable.
func NewFFprobe() *FFprobe {
	return &FFprobe{Path: viper.GetString(key.MediaFFprobe), run: runFFprobe}
}

// ffprobeOutput defines the structure for ffprobe JSON output.
type ffprobeOutput struct {
	Streams []struct {
		Index     int    `json:"index"`
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Channels  int    `json:"channels"`
		Tags      struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Inspect returns the audio tracks, in container order, and the duration of file.
func (p *FFprobe) Inspect(ctx context.Context, file string) (*Info, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration:stream=index,codec_type,codec_name,channels:stream_tags=language,title",
		"-of", "json",
		file,
	}

	out, err := p.run(ctx, p.Path, args...)
	if err != nil {
		return nil, err
	}

	return parseProbe(file, out)
}

func parseProbe(file string, out []byte) (*Info, error) {
	var probeData ffprobeOutput
	if err := json.Unmarshal(out, &probeData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ffprobe output for %s: %w", file, err)
	}

	info := &Info{File: file}

	for _, s := range probeData.Streams {
		if s.CodecType != "audio" {
			continue
		}

		index := len(info.Tracks)
		info.Tracks = append(info.Tracks, Track{
			Index:       index,
			StreamIndex: s.Index,
			Language:    NormalizeLanguage(s.Tags.Language),
			Label:       Label(s.Tags.Title, s.Tags.Language, index),
			Codec:       s.CodecName,
			Channels:    s.Channels,
		})
	}

	if probeData.Format.Duration != "" {
		duration, err := strconv.ParseFloat(probeData.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration string %q for %s: %w", probeData.Format.Duration, file, err)
		}
		info.Duration = int(duration)
	} else {
		log.Warnf("duration not found in ffprobe output for %s", file)
	}

	return info, nil
}

func runFFprobe(ctx context.Context, path string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe execution failed: %w\nFFprobe Error: %s", err, stderr.String())
	}

	return out.Bytes(), nil
}
