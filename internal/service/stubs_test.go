package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"retailpos/internal/model"
	"retailpos/internal/repository"

	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User)}
}

func (r *stubUserRepo) add(u *model.User) *model.User {
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.add(u)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) { return int64(len(r.users)), nil }

func (r *stubUserRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.User, error) {
	return r.FindByID(context.Background(), id)
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubCategoryRepo struct {
	categories map[uint]*model.Category
	nextID     uint
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uint]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.nextID++
	c.ID = r.nextID
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context, activeOnly bool) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uint) (*model.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

type stubProductRepo struct {
	products  map[uint]*model.Product
	nextID    uint
	lastQuery repository.ProductQuery
	deleteErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint, _ bool) (*model.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) sorted() []model.Product {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubProductRepo) List(_ context.Context, q repository.ProductQuery) ([]model.Product, int64, error) {
	r.lastQuery = q
	all := r.sorted()
	return all, int64(len(all)), nil
}

func (r *stubProductRepo) ListActive(_ context.Context, _ bool) ([]model.Product, error) {
	out := make([]model.Product, 0)
	for _, p := range r.sorted() {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DeleteWithoutImage(_ context.Context) ([]uint, error) {
	ids := make([]uint, 0)
	for _, p := range r.sorted() {
		if p.Image == nil {
			ids = append(ids, p.ID)
			delete(r.products, p.ID)
		}
	}
	return ids, nil
}

func (r *stubProductRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, p := range r.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) FindByIDsTx(_ *gorm.DB, ids []uint) ([]model.Product, error) {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubCustomerRepo struct {
	customers map[uint]*model.Customer
	sales     map[uint]int64
	nextID    uint
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uint]*model.Customer), sales: make(map[uint]int64)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.nextID++
	c.ID = r.nextID
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uint) (*model.Customer, error) {
	if c, ok := r.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) ListWithSalesCount(_ context.Context) ([]repository.CustomerWithSales, error) {
	out := make([]repository.CustomerWithSales, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, repository.CustomerWithSales{Customer: *c, SalesCount: r.sales[c.ID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCustomerRepo) Search(_ context.Context, term string) ([]model.Customer, error) {
	term = strings.ToLower(term)
	out := make([]model.Customer, 0)
	for _, c := range r.customers {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(c.Phone, term) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.customers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) CountSales(_ context.Context, id uint) (int64, error) {
	return r.sales[id], nil
}

func (r *stubCustomerRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Customer, error) {
	return r.FindByID(context.Background(), id)
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubSaleRepo stores created sales and answers reads from fixed data.
type stubSaleRepo struct {
	created    []*model.Sale
	listResult []model.Sale
	listCalls  int
	lastFilter repository.SaleFilter
	totals     repository.SaleTotals
	totalsFrom time.Time
	totalsTo   time.Time
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	s.ID = uint(len(r.created) + 1)
	s.CreatedAt = time.Now()
	for i := range s.Items {
		s.Items[i].ID = uint(i + 1)
		s.Items[i].SaleID = s.ID
	}
	r.created = append(r.created, s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint, _ repository.SaleRelations) (*model.Sale, error) {
	for _, s := range r.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	r.listCalls++
	r.lastFilter = filter
	return r.listResult, nil
}

func (r *stubSaleRepo) Totals(_ context.Context, from, to time.Time) (repository.SaleTotals, error) {
	r.totalsFrom, r.totalsTo = from, to
	return r.totals, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)
