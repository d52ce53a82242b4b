// Copyright 2026 SEQSENSE, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ivf2webm muxes an IVF (VP9 or AV1) video file and an optional Ogg Opus
// audio file into a seekable WebM file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/seqsense/webmmuxer"
)

const envPrefix = "IVF2WEBM"

type config struct {
	Video       string
	Audio       string
	Output      string
	TempDir     string
	Title       string
	AudioOffset int64
	Verbose     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCommand(viper.New()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ivf2webm",
		Short:        "Mux IVF video and Ogg Opus audio into WebM",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("video", "", "input IVF file (VP9 or AV1)")
	f.String("audio", "", "input Ogg Opus file")
	f.StringP("output", "o", "", "output WebM file")
	f.String("temp-dir", "", "directory for spilled samples (default: system temporary directory)")
	f.String("audio-offset", "0", "audio timestamp offset in seconds, e.g. 0.120 or -0.040")
	f.String("title", "", "segment title")
	f.BoolP("verbose", "v", false, "enable debug log")

	cobra.CheckErr(v.BindPFlags(f))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func loadConfig(v *viper.Viper) (*config, error) {
	cfg := &config{
		Video:   v.GetString("video"),
		Audio:   v.GetString("audio"),
		Output:  v.GetString("output"),
		TempDir: v.GetString("temp-dir"),
		Title:   v.GetString("title"),
		Verbose: v.GetBool("verbose"),
	}
	if cfg.Video == "" {
		return nil, fmt.Errorf("--video is required")
	}
	if cfg.Output == "" {
		return nil, fmt.Errorf("--output is required")
	}
	offset, err := webmmuxer.ParseTimestamp(v.GetString("audio-offset"))
	if err != nil {
		return nil, fmt.Errorf("parsing --audio-offset: %w", err)
	}
	cfg.AudioOffset = offset
	return cfg, nil
}

func newLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func run(ctx context.Context, cfg *config) error {
	log := newLogger(cfg.Verbose)
	webmmuxer.SetLogger(log)

	var opts []webmmuxer.MuxerOption
	if cfg.TempDir != "" {
		opts = append(opts, webmmuxer.WithTempDir(cfg.TempDir))
	}
	if cfg.Title != "" {
		opts = append(opts, webmmuxer.WithTitle(cfg.Title))
	}
	m, err := webmmuxer.New(cfg.Output, opts...)
	if err != nil {
		return err
	}
	// No-op once Finalize has been called.
	defer m.Close()

	vf, err := os.Open(cfg.Video)
	if err != nil {
		return err
	}
	defer vf.Close()
	video, err := newVideoSource(vf)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Video, err)
	}
	if err := video.declare(m); err != nil {
		return err
	}

	var audio *audioSource
	if cfg.Audio != "" {
		af, err := os.Open(cfg.Audio)
		if err != nil {
			return err
		}
		defer af.Close()
		if audio, err = newAudioSource(af, cfg.AudioOffset); err != nil {
			return fmt.Errorf("%s: %w", cfg.Audio, err)
		}
		if err := audio.declare(m); err != nil {
			return err
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		n, err := video.copyTo(ctx, m)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Video, err)
		}
		log.Infof("Read %d video frames from %s", n, cfg.Video)
		return nil
	})
	if audio != nil {
		eg.Go(func() error {
			st, err := audio.copyTo(ctx, m)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.Audio, err)
			}
			log.Infof("Read %d audio packets from %s", st.written+st.dropped, cfg.Audio)
			if st.dropped > 0 {
				log.Warnf("Dropped %d audio packets shifted before 0 by --audio-offset", st.dropped)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Errorf("Discarding output: %v", err)
		return err
	}

	if err := m.Finalize(); err != nil {
		return err
	}
	log.Infof("Wrote %s", cfg.Output)
	return nil
}
