package directory

import (
	"context"
	"fmt"
	"hash/maphash"
	"log/slog"
	"sync"

	"dual_key/common"

	"golang.org/x/sync/errgroup"
)

// Directory indexes employees by ID and by email. The index lives in memory;
// every change is written to the store first. Additions go to the primary
// store, removals go to the primary store and every source store passed to
// Load, so a removed employee does not come back on the next Load.
type Directory struct {
	store *common.EmployeeStore
	Glog  *slog.Logger

	// guards index and sources
	lock    sync.RWMutex
	index   *common.DualMap[string, string, common.Employee]
	sources []*common.EmployeeStore
	seed    maphash.Seed
}

func New(store *common.EmployeeStore, logger *slog.Logger) *Directory {
	return &Directory{
		store: store,
		Glog:  logger,
		index: common.NewDualMap[string, string, common.Employee](),
		seed:  maphash.MakeSeed(),
	}
}

// Load reads the primary store and the given source stores concurrently and
// indexes their employees, primary store first. A source employee whose ID or
// email is already indexed is skipped, so earlier stores win. Returns the
// number of employees indexed.
func (d *Directory) Load(ctx context.Context, sources ...*common.EmployeeStore) (int, error) {
	stores := append([]*common.EmployeeStore{d.store}, sources...)
	batches := make([][]common.Employee, len(stores))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, store := range stores {
		eg.Go(func() error {
			employees, err := store.All(egCtx)
			if err != nil {
				return err
			}
			batches[i] = employees
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	d.sources = sources
	loaded := 0
	for i, batch := range batches {
		valid := common.Filter(batch, func(e common.Employee) bool {
			return e.ID != "" && e.Email != ""
		})
		if skipped := len(batch) - len(valid); skipped > 0 {
			d.Glog.Warn(fmt.Sprintf("Skipped %d employees without id or email in %s", skipped, stores[i].DSN()))
		}
		for _, e := range valid {
			if i > 0 {
				if _, taken := d.index.PartnerOfKey1(e.ID); taken {
					d.Glog.Debug(fmt.Sprintf("Employee %s from %s is shadowed by an earlier store", e.ID, stores[i].DSN()))
					continue
				}
			}
			if err := d.index.Put(e.ID, e.Email, e); err != nil {
				d.Glog.Warn(fmt.Sprintf("Skipped employee %s from %s: %s", e.ID, stores[i].DSN(), err.Error()))
				continue
			}
			loaded++
		}
	}
	d.Glog.Debug(fmt.Sprintf("Directory loaded %d employees from %d stores", loaded, len(stores)))
	return loaded, nil
}

// Add stores e. If e's ID and email already belong to one employee, that
// employee is replaced; if either belongs to someone else, the error matches
// common.ErrInvalidKeyPairing and nothing is written.
func (d *Directory) Add(ctx context.Context, e common.Employee) error {
	if e.ID == "" || e.Email == "" {
		return common.NewError(common.UCodeMalformedRecord, "employee needs both an id and an email", false)
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	if err := d.index.CheckPairing(e.ID, e.Email); err != nil {
		return err
	}
	if err := d.store.Save(ctx, e); err != nil {
		return err
	}
	if err := d.index.Put(e.ID, e.Email, e); err != nil {
		panic(err) // checked above while holding the lock
	}
	d.Glog.Debug(fmt.Sprintf("Employee %s <%s> stored", e.ID, e.Email))
	return nil
}

func (d *Directory) ByID(id string) (common.Employee, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.index.GetByKey1(id)
}

func (d *Directory) ByEmail(email string) (common.Employee, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.index.GetByKey2(email)
}

// RemoveByID removes the employee with the given ID. It returns false if no
// such employee is indexed.
func (d *Directory) RemoveByID(ctx context.Context, id string) (bool, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if _, ok := d.index.PartnerOfKey1(id); !ok {
		return false, nil
	}
	return d.remove(ctx, id)
}

// RemoveByEmail removes the employee with the given email. It returns false if
// no such employee is indexed.
func (d *Directory) RemoveByEmail(ctx context.Context, email string) (bool, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	id, ok := d.index.PartnerOfKey2(email)
	if !ok {
		return false, nil
	}
	return d.remove(ctx, id)
}

func (d *Directory) remove(ctx context.Context, id string) (bool, error) {
	email, _ := d.index.PartnerOfKey1(id)
	for _, store := range append([]*common.EmployeeStore{d.store}, d.sources...) {
		if err := store.DeleteByKeys(ctx, id, email); err != nil {
			return false, err
		}
	}
	removed := d.index.DeleteByKey1(id)
	d.Glog.Debug(fmt.Sprintf("Employee %s <%s> removed from %d stores", id, email, 1+len(d.sources)))
	return removed, nil
}

func (d *Directory) Len() int {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.index.Len()
}

// Fingerprint changes whenever the set of indexed employees changes. It is
// only comparable between calls on the same Directory.
func (d *Directory) Fingerprint() uint64 {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.index.Fingerprint(d.seed)
}
