package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
	"github.com/ridwanfathin/ai-invoice-import/internal/session"
)

//go:generate mockgen -destination=../mocks/invoice_api_mock.go -package=mocks github.com/ridwanfathin/ai-invoice-import/internal/workflow InvoiceAPI

// InvoiceAPI is the billing backend as seen by the import workflow
type InvoiceAPI interface {
	ListBusinesses(ctx context.Context) ([]domain.Business, error)
	ListCustomers(ctx context.Context, businessID string) ([]domain.Customer, error)
	ProcessInvoiceImage(ctx context.Context, upload domain.Upload) (*domain.ExtractedInvoice, error)
	CreateInvoice(ctx context.Context, businessID string, invoice *domain.ExtractedInvoice) (*domain.CreatedInvoice, error)
}

// Store keeps encoded sessions between requests
type Store interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte) error
	Delete(ctx context.Context, id string) error
}

// DefaultBusyTimeout is how long a session may wait for a backend call before
// the call is considered lost
const DefaultBusyTimeout = 2 * time.Minute

// Service drives import workflow sessions
type Service struct {
	api         InvoiceAPI
	store       Store
	logger      logrus.FieldLogger
	now         func() time.Time
	locker      Locker
	busyTimeout time.Duration

	fetchMu sync.Mutex
	fetches map[string]*customerFetch
}

// customerFetch is the cancellation token of an in-flight customer list request
type customerFetch struct {
	seq    uint64
	cancel context.CancelFunc
}

// NewService creates a workflow service
func NewService(api InvoiceAPI, store Store, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		api:         api,
		store:       store,
		logger:      logger,
		now:         time.Now,
		locker:      &stripedLocker{},
		busyTimeout: DefaultBusyTimeout,
		fetches:     make(map[string]*customerFetch),
	}
}

// SetLocker replaces the in-process session locker, e.g. with one shared by
// several instances. It is not used when the store locks sessions itself.
func (s *Service) SetLocker(locker Locker) {
	s.locker = locker
}

// SetBusyTimeout sets how long a Processing or Creating session waits for its
// backend call. It must exceed the backend client timeout.
func (s *Service) SetBusyTimeout(d time.Duration) {
	s.busyTimeout = d
}

// Start opens a new session, loading businesses and the default business's customers
func (s *Service) Start(ctx context.Context) (*Session, error) {
	sess := &Session{
		ID:    uuid.NewString(),
		State: AwaitingUpload{},
	}

	businesses, err := s.api.ListBusinesses(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("session", sess.ID).Error("Error fetching businesses")
		sess.Error = MsgLoadBusinesses
	} else {
		sess.Businesses = businesses
		if len(businesses) > 0 {
			sess.BusinessID = strconv.FormatInt(businesses[0].ID, 10)
		}
	}

	if sess.BusinessID != "" {
		sess.CustomerFetch++
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	if sess.BusinessID == "" {
		return sess, nil
	}
	return s.fetchCustomers(ctx, sess.ID, sess.BusinessID, sess.CustomerFetch)
}

// Get returns the current state of a session
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, id)
}

// SelectBusiness changes the selected business and refreshes its customers.
// An empty business clears the customer list without calling the backend.
func (s *Service) SelectBusiness(ctx context.Context, id, businessID string) (*Session, error) {
	var seq uint64
	sess, err := s.update(ctx, id, func(sess *Session) error {
		if busy(sess.State) {
			return ErrBusy
		}
		sess.BusinessID = businessID
		sess.Error = ""
		sess.CustomerFetch++
		seq = sess.CustomerFetch
		if businessID == "" {
			sess.Customers = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if businessID == "" {
		s.cancelFetch(id)
		return sess, nil
	}
	return s.fetchCustomers(ctx, id, businessID, seq)
}

// fetchCustomers loads the customers of businessID and applies them only if no
// newer business selection happened meanwhile
func (s *Service) fetchCustomers(ctx context.Context, id, businessID string, seq uint64) (*Session, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.fetchMu.Lock()
	if prev, ok := s.fetches[id]; ok {
		prev.cancel()
	}
	s.fetches[id] = &customerFetch{seq: seq, cancel: cancel}
	s.fetchMu.Unlock()

	defer func() {
		s.fetchMu.Lock()
		if cur, ok := s.fetches[id]; ok && cur.seq == seq {
			delete(s.fetches, id)
		}
		s.fetchMu.Unlock()
	}()

	customers, fetchErr := s.api.ListCustomers(fetchCtx, businessID)

	return s.update(context.WithoutCancel(ctx), id, func(sess *Session) error {
		if sess.CustomerFetch != seq {
			s.logger.WithFields(logrus.Fields{
				"session":  id,
				"business": businessID,
			}).Debug("Discarding superseded customer list")
			return nil
		}
		if fetchErr != nil {
			s.logger.WithError(fetchErr).WithField("session", id).Error("Error fetching customers")
			sess.Customers = nil
			sess.Error = MsgLoadCustomers
			return nil
		}
		sess.Customers = customers
		return nil
	})
}

func (s *Service) cancelFetch(id string) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	if cur, ok := s.fetches[id]; ok {
		cur.cancel()
		delete(s.fetches, id)
	}
}

// Process validates the upload and sends it for extraction.
// A new upload while reviewing replaces the data under review.
// Validation and backend failures are reported through Session.Error.
func (s *Service) Process(ctx context.Context, id string, upload *domain.Upload) (*Session, error) {
	var (
		businessID string
		invalid    bool
	)
	sess, err := s.update(ctx, id, func(sess *Session) error {
		switch sess.State.(type) {
		case AwaitingUpload, Created:
		case Reviewing:
			// a new file discards the previous extraction even when it is then rejected
			sess.State = AwaitingUpload{}
		case Processing, Creating:
			return ErrBusy
		default:
			return ErrInvalidTransition
		}

		if vErr := ValidateUpload(upload, sess.BusinessID); vErr != nil {
			sess.Error = vErr.Message
			invalid = true
			return nil
		}

		sess.Error = ""
		sess.State = Processing{Filename: upload.Filename}
		businessID = sess.BusinessID
		return nil
	})
	if err != nil || invalid {
		return sess, err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"session":  id,
		"business": businessID,
		"filename": upload.Filename,
		"size":     upload.Size,
	})
	logger.Info("Processing invoice image")

	extracted, callErr := s.api.ProcessInvoiceImage(ctx, *upload)

	return s.update(context.WithoutCancel(ctx), id, func(sess *Session) error {
		if _, ok := sess.State.(Processing); !ok {
			logger.Warn("Discarding extraction result, workflow moved on")
			return nil
		}
		if callErr != nil {
			logger.WithError(callErr).Error("Error processing image")
			sess.State = AwaitingUpload{}
			sess.Error = backendMessage(callErr, MsgProcessFailed)
			return nil
		}
		sess.State = Reviewing{
			Extracted: extracted,
			Editable:  extracted.Clone(),
		}
		return nil
	})
}

// Edit applies field edits to the working copy under review.
// Either every edit is applied or none is.
func (s *Service) Edit(ctx context.Context, id string, edits ...Edit) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		reviewing, err := reviewingState(sess)
		if err != nil {
			return err
		}

		editable := reviewing.Editable.Clone()
		for _, e := range edits {
			if err := applyEdit(editable, e); err != nil {
				return err
			}
		}
		reviewing.Editable = editable
		sess.State = reviewing
		return nil
	})
}

// Create submits the working copy for invoice creation under the selected business.
// The edited data is sent as is; the backend is the one validating it.
func (s *Service) Create(ctx context.Context, id string) (*Session, error) {
	var (
		businessID string
		editable   *domain.ExtractedInvoice
	)
	_, err := s.update(ctx, id, func(sess *Session) error {
		reviewing, err := reviewingState(sess)
		if err != nil {
			return err
		}
		sess.Error = ""
		sess.State = Creating(reviewing)
		businessID = sess.BusinessID
		editable = reviewing.Editable.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"session":  id,
		"business": businessID,
	})
	logger.Info("Creating invoice from extracted data")

	created, callErr := s.api.CreateInvoice(ctx, businessID, editable)

	return s.update(context.WithoutCancel(ctx), id, func(sess *Session) error {
		creating, ok := sess.State.(Creating)
		if !ok {
			logger.Warn("Discarding creation result, workflow moved on")
			return nil
		}
		if callErr != nil {
			logger.WithError(callErr).Error("Error creating invoice")
			sess.State = Reviewing(creating)
			sess.Error = backendMessage(callErr, MsgCreateFailed)
			return nil
		}
		logger.WithFields(logrus.Fields{
			"invoice_id":     created.InvoiceID,
			"invoice_number": created.InvoiceNumber,
		}).Info("Invoice created")
		sess.State = Created{Summary: *created}
		return nil
	})
}

// Reset discards the upload and any extracted data and returns to AwaitingUpload
func (s *Service) Reset(ctx context.Context, id string) (*Session, error) {
	return s.update(ctx, id, func(sess *Session) error {
		if _, ok := sess.State.(Creating); ok {
			return ErrBusy
		}
		sess.State = AwaitingUpload{}
		sess.Error = ""
		return nil
	})
}

func reviewingState(sess *Session) (Reviewing, error) {
	switch st := sess.State.(type) {
	case Reviewing:
		return st, nil
	case Processing, Creating:
		return Reviewing{}, ErrBusy
	}
	return Reviewing{}, ErrInvalidTransition
}

// lockingStore is a Store that serializes the updates of a session itself,
// handing fn a view of the store bound to the lock
type lockingStore interface {
	WithLock(ctx context.Context, id string, fn func(session.Store) error) error
}

// update loads a session, applies fn and saves it, serialized per session id.
// Nothing is saved when fn fails.
func (s *Service) update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	var sess *Session
	run := func(store Store) error {
		var err error
		sess, err = s.apply(ctx, store, id, fn)
		return err
	}

	if ls, ok := s.store.(lockingStore); ok {
		err := ls.WithLock(ctx, id, func(store session.Store) error {
			return run(store)
		})
		return sess, err
	}

	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer unlock()

	err = run(s.store)
	return sess, err
}

func (s *Service) apply(ctx context.Context, store Store, id string, fn func(*Session) error) (*Session, error) {
	sess, err := s.loadFrom(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return sess, err
	}
	if err := s.saveTo(ctx, store, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) load(ctx context.Context, id string) (*Session, error) {
	return s.loadFrom(ctx, s.store, id)
}

func (s *Service) loadFrom(ctx context.Context, store Store, id string) (*Session, error) {
	data, err := store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Undecodable sessions are dropped so the browser gets a fresh one
		s.logger.WithError(err).WithField("session", id).Warn("Dropping undecodable session")
		if err := store.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete session: %w", err)
		}
		return nil, ErrSessionNotFound
	}
	s.releaseAbandoned(&sess)
	return &sess, nil
}

// releaseAbandoned moves a session out of a busy state whose backend call can
// no longer report back, e.g. because the instance running it stopped
func (s *Service) releaseAbandoned(sess *Session) {
	if !busy(sess.State) || s.busyTimeout <= 0 || s.now().Sub(sess.UpdatedAt) < s.busyTimeout {
		return
	}

	logger := s.logger.WithFields(logrus.Fields{
		"session": sess.ID,
		"state":   sess.Kind(),
		"since":   sess.UpdatedAt,
	})
	switch st := sess.State.(type) {
	case Processing:
		sess.State = AwaitingUpload{}
		sess.Error = MsgProcessFailed
	case Creating:
		sess.State = Reviewing(st)
		sess.Error = MsgCreateInterrupted
	}
	logger.Warn("Releasing session abandoned while waiting for the backend")
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	return s.saveTo(ctx, s.store, sess)
}

func (s *Service) saveTo(ctx context.Context, store Store, sess *Session) error {
	sess.UpdatedAt = s.now()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := store.Save(ctx, sess.ID, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
