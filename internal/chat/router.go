package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/themobileprof/medichat-be/internal/assistant"
	"github.com/themobileprof/medichat-be/internal/fallback"
	"github.com/themobileprof/medichat-be/internal/privacy"
)

// Mode tells the caller which path produced a response
type Mode string

const (
	ModeMedical Mode = "medical"
	ModeChat    Mode = "chat"
)

// Response is the routed answer to one message
type Response struct {
	Text     string        `json:"response"`
	Mode     Mode          `json:"mode,omitempty"`
	Symptoms []string      `json:"symptoms,omitempty"`
	Disease  string        `json:"disease,omitempty"`
	Fallback fallback.Kind `json:"-"`
}

// Interfaces for dependencies
type Extractor interface {
	Extract(message string) []string
}

type IntentDetector interface {
	HasMedicalIntent(message string) bool
}

type DiseasePredictor interface {
	PredictDisease(symptoms []string) (disease string, found bool, err error)
}

type Completer interface {
	Complete(ctx context.Context, message string) assistant.Reply
}

// Recorder persists a summary of each routed message. It never sees the
// message text.
type Recorder interface {
	SaveConsultation(ctx context.Context, mode string, symptoms []string, disease, fallbackKind string) error
}

// Router decides between the medical path and the chat path for each
// message. It holds no per-request state.
type Router struct {
	extractor Extractor
	detector  IntentDetector
	predictor DiseasePredictor
	completer Completer
	recorder  Recorder

	recordTimeout time.Duration
}

// NewRouter creates a router over the loaded symptom vocabulary, keyword
// detector, classifier and chat client
func NewRouter(ext Extractor, det IntentDetector, pred DiseasePredictor, comp Completer) *Router {
	return &Router{
		extractor:     ext,
		detector:      det,
		predictor:     pred,
		completer:     comp,
		recordTimeout: 5 * time.Second,
	}
}

// SetRecorder enables the consultation log
func (r *Router) SetRecorder(rec Recorder) {
	r.recorder = rec
}

// Handle routes one message. It always produces a response.
func (r *Router) Handle(ctx context.Context, message string) Response {
	if strings.TrimSpace(message) == "" {
		return Response{Text: fallback.Message(fallback.EmptyInput), Fallback: fallback.EmptyInput}
	}

	log.Printf("Routing message: %s", privacy.SanitizeForLogging(message))
	if privacy.ContainsPII(message) {
		log.Printf("Warning: potential PII detected in message: %s", strings.Join(privacy.DetectedKinds(message), ", "))
	}

	found := r.extractor.Extract(message)
	medical := r.detector.HasMedicalIntent(message)

	resp, routed := r.medical(found, medical)
	if !routed {
		reply := r.completer.Complete(ctx, message)
		resp = Response{Text: reply.Text, Mode: ModeChat, Fallback: reply.Fallback}
	}

	log.Printf("Message routed: mode=%s symptoms=%d fallback=%s", resp.Mode, len(found), resp.Fallback)
	r.record(resp)
	return resp
}

// medical runs the classifier when either signal fires. routed is false when
// the message should go to the chat path instead.
func (r *Router) medical(found []string, medicalIntent bool) (resp Response, routed bool) {
	if len(found) == 0 && !medicalIntent {
		return Response{}, false
	}

	disease, ok, err := r.predictor.PredictDisease(found)
	if err != nil {
		log.Printf("Disease prediction failed: %v", err)
		return Response{
			Text:     fallback.Message(fallback.Unexpected),
			Mode:     ModeChat,
			Fallback: fallback.Unexpected,
		}, true
	}
	if !ok {
		// keyword hit with no recognised symptom
		return Response{}, false
	}

	return Response{
		Text:     FormatMedical(found, disease),
		Mode:     ModeMedical,
		Symptoms: found,
		Disease:  disease,
	}, true
}

// FormatMedical renders the symptom analysis shown for medical-mode replies
func FormatMedical(symptoms []string, disease string) string {
	reported := "detected from context"
	if len(symptoms) > 0 {
		reported = strings.Join(symptoms, ", ")
	}

	return fmt.Sprintf("🔍 **Symptom Analysis**\n\n"+
		"**Reported symptoms**: %s\n\n"+
		"**Possible condition**: %s\n\n"+
		"⚠️ **Important**: This is not a medical diagnosis. Consult a healthcare professional for accurate assessment.",
		reported, disease)
}

func (r *Router) record(resp Response) {
	if r.recorder == nil {
		return
	}

	fb := ""
	if resp.Fallback != fallback.None {
		fb = resp.Fallback.String()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.recordTimeout)
		defer cancel()

		if err := r.recorder.SaveConsultation(ctx, string(resp.Mode), resp.Symptoms, resp.Disease, fb); err != nil {
			log.Printf("Warning: failed to save consultation: %v", err)
		}
	}()
}
