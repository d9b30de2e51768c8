// internal/services/purchase_service.go
package services

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/models"
	"github.com/isonexus/iso-nexus-backend/internal/store"
)

var (
	ErrNoActiveFlow      = errors.New("no checkout in progress")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrCloseDisabled     = errors.New("checkout cannot be closed during this step")
)

// FlowState is the externally visible snapshot of the checkout workflow.
// Non-idle states carry the target document; RedirectURL is set once the
// external payment page has been opened.
type FlowState struct {
	Step        models.FlowStep  `json:"step"`
	Document    *models.Document `json:"document,omitempty"`
	RedirectURL string           `json:"redirect_url,omitempty"`
}

// ActionOutcome reports which sub-flow an act-on-document request entered:
// the download simulation for free or owned documents, checkout otherwise.
type ActionOutcome struct {
	Action string    `json:"action"` // "download" or "checkout"
	Flow   FlowState `json:"flow"`
}

const (
	ActionDownload = "download"
	ActionCheckout = "checkout"
)

// PurchaseService runs the checkout state machine. At most one flow exists at
// a time; it is a single slot of service state, not a per-document workflow.
// Timed transitions are cancellable so teardown never mutates state late.
type PurchaseService struct {
	catalog      *store.CatalogStore
	entitlements *store.EntitlementStore
	logger       *logrus.Logger

	redirectDelay time.Duration
	successDelay  time.Duration
	downloadDelay time.Duration

	mu          sync.Mutex
	step        models.FlowStep
	doc         models.Document
	owner       string
	redirectURL string
	gen         uint64
	timer       *time.Timer
	downloading map[string]*time.Timer
}

func NewPurchaseService(catalog *store.CatalogStore, entitlements *store.EntitlementStore, cfg config.FlowConfig, logger *logrus.Logger) *PurchaseService {
	return &PurchaseService{
		catalog:       catalog,
		entitlements:  entitlements,
		logger:        logger,
		redirectDelay: cfg.RedirectDelay,
		successDelay:  cfg.SuccessDelay,
		downloadDelay: cfg.DownloadDelay,
		step:          models.FlowStepIdle,
		downloading:   make(map[string]*time.Timer),
	}
}

// StartDocumentAction is the single entry point for acting on a document.
// Free or already-purchased documents run the download simulation; anything
// else opens (or re-enters) the checkout flow. Re-entering with the document
// already in flight is a no-op; a different document discards the previous
// context.
func (s *PurchaseService) StartDocumentAction(sessionID, docID string) (ActionOutcome, error) {
	doc, err := s.catalog.GetDocument(docID)
	if err != nil {
		return ActionOutcome{}, err
	}

	if IsDownloadable(doc, s.entitlements.Purchased(sessionID)) {
		s.startDownload(doc)
		return ActionOutcome{Action: ActionDownload, Flow: s.State()}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != models.FlowStepIdle && s.doc.ID == doc.ID && s.owner == sessionID {
		return ActionOutcome{Action: ActionCheckout, Flow: s.stateLocked()}, nil
	}

	s.resetLocked()
	s.step = models.FlowStepDetails
	s.doc = doc
	s.owner = sessionID

	s.logger.WithFields(logrus.Fields{
		"document_id": doc.ID,
		"price":       doc.Price,
	}).Info("Checkout opened")

	return ActionOutcome{Action: ActionCheckout, Flow: s.stateLocked()}, nil
}

// ConfirmIntent moves Details to Redirecting and schedules the redirect step.
// After the delay the external payment link is opened (a logged no-op when
// absent) and the flow advances to AwaitingConfirmation on its own.
func (s *PurchaseService) ConfirmIntent(sessionID string) (FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFlowLocked(sessionID); err != nil {
		return s.stateLocked(), err
	}
	if s.step != models.FlowStepDetails {
		return s.stateLocked(), ErrInvalidTransition
	}

	s.step = models.FlowStepRedirecting
	gen := s.gen
	s.timer = time.AfterFunc(s.redirectDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen || s.step != models.FlowStepRedirecting {
			return
		}
		if s.doc.PaymentLink != "" {
			s.redirectURL = s.doc.PaymentLink
			s.logger.WithFields(logrus.Fields{
				"document_id": s.doc.ID,
				"url":         s.doc.PaymentLink,
			}).Info("Opening external payment page")
		} else {
			s.logger.WithField("document_id", s.doc.ID).
				Info("No payment link provided, simulating local flow")
		}
		s.step = models.FlowStepAwaitingConfirmation
	})

	return s.stateLocked(), nil
}

// ConfirmCompletion is the user's assertion that payment finished. The
// entitlement is granted only at the terminal step out of Success.
func (s *PurchaseService) ConfirmCompletion(sessionID string) (FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFlowLocked(sessionID); err != nil {
		return s.stateLocked(), err
	}
	if s.step != models.FlowStepAwaitingConfirmation {
		return s.stateLocked(), ErrInvalidTransition
	}

	s.step = models.FlowStepSuccess
	gen := s.gen
	s.timer = time.AfterFunc(s.successDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen || s.step != models.FlowStepSuccess {
			return
		}
		s.entitlements.Grant(s.owner, s.doc.ID)
		s.logger.WithFields(logrus.Fields{
			"document_id": s.doc.ID,
			"session_id":  s.owner,
		}).Info("Document unlocked")
		s.resetLocked()
	})

	return s.stateLocked(), nil
}

// GoBack cancels out of AwaitingConfirmation and returns to the details view,
// keeping the selected document.
func (s *PurchaseService) GoBack(sessionID string) (FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFlowLocked(sessionID); err != nil {
		return s.stateLocked(), err
	}
	if s.step != models.FlowStepAwaitingConfirmation {
		return s.stateLocked(), ErrInvalidTransition
	}

	s.step = models.FlowStepDetails
	s.redirectURL = ""
	return s.stateLocked(), nil
}

// Close abandons the flow without granting anything. It is disabled during
// Redirecting and Success so the flow cannot be dropped mid-transition.
func (s *PurchaseService) Close(sessionID string) (FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFlowLocked(sessionID); err != nil {
		return s.stateLocked(), err
	}
	if s.step == models.FlowStepRedirecting || s.step == models.FlowStepSuccess {
		return s.stateLocked(), ErrCloseDisabled
	}

	s.resetLocked()
	return s.stateLocked(), nil
}

func (s *PurchaseService) State() FlowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// IsDownloading reports whether the download simulation is running for the
// document.
func (s *PurchaseService) IsDownloading(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.downloading[docID]
	return ok
}

// Shutdown cancels every pending timed transition.
func (s *PurchaseService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	for id, t := range s.downloading {
		t.Stop()
		delete(s.downloading, id)
	}
}

func (s *PurchaseService) startDownload(doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.downloading[doc.ID]; ok {
		return
	}

	s.downloading[doc.ID] = time.AfterFunc(s.downloadDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.downloading[doc.ID]; !ok {
			return
		}
		delete(s.downloading, doc.ID)
		s.logger.WithFields(logrus.Fields{
			"document_id": doc.ID,
			"title":       doc.Title,
		}).Info("Download complete")
	})
}

func (s *PurchaseService) requireFlowLocked(sessionID string) error {
	if s.step == models.FlowStepIdle || s.owner != sessionID {
		return ErrNoActiveFlow
	}
	return nil
}

func (s *PurchaseService) stateLocked() FlowState {
	state := FlowState{Step: s.step, RedirectURL: s.redirectURL}
	if s.step != models.FlowStepIdle {
		doc := s.doc
		state.Document = &doc
	}
	return state
}

// resetLocked returns the slot to Idle and invalidates pending timers.
func (s *PurchaseService) resetLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.step = models.FlowStepIdle
	s.doc = models.Document{}
	s.owner = ""
	s.redirectURL = ""
}
