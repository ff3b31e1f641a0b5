package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/uxforge/refit/internal/dialect"
	"github.com/uxforge/refit/internal/export"
	"github.com/uxforge/refit/internal/pipeline"
	"github.com/uxforge/refit/internal/speech"
)

// readInput loads a one-shot payload from a file, or stdin when path
// is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := os.Stdout.Write(buf.Bytes())
	return err
}

func analyzeCmd() *cobra.Command {
	var file, focus string
	var markdown bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Extract UI/UX requirements from a meeting transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			text, err := readInput(file)
			if err != nil {
				return err
			}
			resp := a.pipe.Analyze(cmd.Context(), text, focus)
			if markdown && resp.Success && resp.Data != nil {
				fmt.Println(export.AnalysisMarkdown(pipeline.DecodeRequirementSet(resp.Data)))
				return nil
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "transcript file, - for stdin")
	cmd.Flags().StringVar(&focus, "focus", "", "special focus area for the analysis")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a Markdown report instead of JSON")
	return cmd
}

func improveCmd() *cobra.Command {
	var codeFile, reqFile, language, focus, outFile string
	cmd := &cobra.Command{
		Use:   "improve",
		Short: "Apply extracted requirements to front-end code",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			code, err := readInput(codeFile)
			if err != nil {
				return err
			}
			reqs, err := readInput(reqFile)
			if err != nil {
				return err
			}

			d := dialect.Detect(code)
			if pinned, ok := dialect.Parse(language); ok {
				d = pinned
			}

			resp := a.pipe.ImproveText(cmd.Context(), reqs, code, d, focus)
			if outFile != "" && resp.Success && resp.Data != nil {
				ir := pipeline.DecodeImprovementResult(resp.Data)
				if err := os.WriteFile(outFile, []byte(ir.ImprovedCode), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outFile, err)
				}
				fmt.Fprintf(os.Stderr, "improved code written to %s\n", outFile)
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVarP(&codeFile, "code", "c", "", "current code file")
	cmd.Flags().StringVarP(&reqFile, "requirements", "r", "", "requirements file (JSON, Markdown or text)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "pin the code dialect instead of detecting it")
	cmd.Flags().StringVar(&focus, "focus", "", "special focus area for the improvement")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the improved code to this file")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("requirements")
	return cmd
}

func summarizeCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a meeting transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			text, err := readInput(file)
			if err != nil {
				return err
			}
			resp := a.pipe.Summarize(cmd.Context(), text)
			if resp.Success {
				fmt.Println(resp.Raw)
				return nil
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "transcript file, - for stdin")
	return cmd
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the UI/UX assistant a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			result := a.assistant.Ask(cmd.Context(), args[0])
			return printJSON(result)
		},
	}
	return cmd
}

func transcribeCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe a WAV meeting recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			cfg := a.cfg

			if cfg.SpeechKey == "" || cfg.SpeechRegion == "" {
				return fmt.Errorf("AZURE_SPEECH_KEY and AZURE_SPEECH_REGION are required for transcription")
			}

			audio, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			info, err := speech.ValidateWAV(audio)
			if err != nil {
				return err
			}
			if advice := info.Remediation(); advice != "" {
				fmt.Fprintln(os.Stderr, "note:", advice)
			}

			client := speech.NewClient(cfg.SpeechKey, cfg.SpeechRegion, cfg.SpeechLanguage)
			transcript, err := client.Transcribe(cmd.Context(), audio)
			if err != nil {
				return err
			}
			fmt.Println(transcript)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "WAV recording to transcribe")
	cmd.MarkFlagRequired("file")
	return cmd
}
