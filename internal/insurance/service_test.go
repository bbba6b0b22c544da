package insurance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository. Contracts and coverages keep
// insertion order so FirstActiveContract behaves like the ordered query.
type fakeRepo struct {
	patients  map[uuid.UUID]*Patient
	insurers  map[uuid.UUID]*Insurance
	contracts []*InsuranceContract
	coverages []*Coverage
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patients: make(map[uuid.UUID]*Patient),
		insurers: make(map[uuid.UUID]*Insurance),
	}
}

func (r *fakeRepo) SavePatient(_ context.Context, p *Patient) (*Patient, error) {
	cp := *p
	r.patients[p.ID] = &cp
	saved := cp
	return &saved, nil
}

func (r *fakeRepo) GetPatientByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ListPatients(_ context.Context) ([]Patient, error) {
	var out []Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) FindPatientByNationalID(_ context.Context, nationalID string) (*Patient, error) {
	for _, p := range r.patients {
		if p.NationalID == nationalID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) DeletePatient(_ context.Context, id uuid.UUID) error {
	if _, ok := r.patients[id]; !ok {
		return ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *fakeRepo) SaveInsurance(_ context.Context, ins *Insurance) (*Insurance, error) {
	cp := *ins
	r.insurers[ins.ID] = &cp
	saved := cp
	return &saved, nil
}

func (r *fakeRepo) GetInsuranceByID(_ context.Context, id uuid.UUID) (*Insurance, error) {
	ins, ok := r.insurers[id]
	if !ok {
		return nil, ErrInsuranceNotFound
	}
	cp := *ins
	return &cp, nil
}

func (r *fakeRepo) ListInsurances(_ context.Context) ([]Insurance, error) {
	var out []Insurance
	for _, ins := range r.insurers {
		out = append(out, *ins)
	}
	return out, nil
}

func (r *fakeRepo) DeleteInsurance(_ context.Context, id uuid.UUID) error {
	if _, ok := r.insurers[id]; !ok {
		return ErrInsuranceNotFound
	}
	delete(r.insurers, id)
	return nil
}

func (r *fakeRepo) SaveContract(_ context.Context, c *InsuranceContract) (*InsuranceContract, error) {
	for i, existing := range r.contracts {
		if existing.ID == c.ID {
			cp := *c
			r.contracts[i] = &cp
			saved := cp
			return &saved, nil
		}
	}
	cp := *c
	r.contracts = append(r.contracts, &cp)
	saved := cp
	return &saved, nil
}

func (r *fakeRepo) GetContractByID(_ context.Context, id uuid.UUID) (*InsuranceContract, error) {
	for _, c := range r.contracts {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrContractNotFound
}

func (r *fakeRepo) ListContractsByPatient(_ context.Context, patientID uuid.UUID) ([]InsuranceContract, error) {
	var out []InsuranceContract
	for _, c := range r.contracts {
		if c.PatientID == patientID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListContractsByInsurance(_ context.Context, insuranceID uuid.UUID) ([]InsuranceContract, error) {
	var out []InsuranceContract
	for _, c := range r.contracts {
		if c.InsuranceID == insuranceID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteContract(_ context.Context, id uuid.UUID) error {
	idx := -1
	for i, c := range r.contracts {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrContractNotFound
	}
	r.contracts = append(r.contracts[:idx], r.contracts[idx+1:]...)

	kept := r.coverages[:0]
	for _, cov := range r.coverages {
		if cov.ContractID != id {
			kept = append(kept, cov)
		}
	}
	r.coverages = kept
	return nil
}

func (r *fakeRepo) FirstActiveContract(_ context.Context, patientID uuid.UUID) (*InsuranceContract, error) {
	for _, c := range r.contracts {
		if c.PatientID == patientID && c.Active {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) AddCoverage(_ context.Context, cov *Coverage) (*Coverage, error) {
	cp := *cov
	r.coverages = append(r.coverages, &cp)
	saved := cp
	return &saved, nil
}

func (r *fakeRepo) GetCoverageByID(_ context.Context, id uuid.UUID) (*Coverage, error) {
	for _, cov := range r.coverages {
		if cov.ID == id {
			cp := *cov
			return &cp, nil
		}
	}
	return nil, ErrCoverageNotFound
}

func (r *fakeRepo) ListCoveragesByContract(_ context.Context, contractID uuid.UUID) ([]Coverage, error) {
	var out []Coverage
	for _, cov := range r.coverages {
		if cov.ContractID == contractID {
			out = append(out, *cov)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteCoverage(_ context.Context, id uuid.UUID) error {
	idx := -1
	for i, cov := range r.coverages {
		if cov.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCoverageNotFound
	}
	r.coverages = append(r.coverages[:idx], r.coverages[idx+1:]...)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, zerolog.Nop()), repo
}

func makePatient(t *testing.T, svc *Service, nationalID string) *Patient {
	t.Helper()
	p, err := svc.CreatePatient(context.Background(), &Patient{
		FirstName:  "Fatou",
		LastName:   "Ndiaye",
		NationalID: nationalID,
		Phone:      "+221770001122",
		Active:     true,
	})
	require.NoError(t, err)
	return p
}

func makeInsurer(t *testing.T, svc *Service, name string) *Insurance {
	t.Helper()
	ins, err := svc.CreateInsurance(context.Background(), &Insurance{
		Name:        name,
		Type:        "Mutuelle",
		PhoneNumber: "+221770002233",
		Active:      true,
	})
	require.NoError(t, err)
	return ins
}

func makeContract(t *testing.T, svc *Service, patientID, insuranceID uuid.UUID, number string, active bool) *InsuranceContract {
	t.Helper()
	c, err := svc.CreateContract(context.Background(), &InsuranceContract{
		ContractNumber: number,
		ContractType:   "Standard",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:         active,
		PatientID:      patientID,
		InsuranceID:    insuranceID,
	})
	require.NoError(t, err)
	return c
}

func TestCreatePatientDefaultsCountry(t *testing.T) {
	svc, _ := newTestService()

	p := makePatient(t, svc, "1199000000001")
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, DefaultCountry, p.Country)
}

func TestGetPatientUnknown(t *testing.T) {
	svc, _ := newTestService()

	id := uuid.New()
	_, err := svc.GetPatient(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatientNotFound))
	assert.Contains(t, err.Error(), id.String())
}

func TestFindPatientByNationalIDAbsent(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.FindPatientByNationalID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdatePatientPreservesIdentity(t *testing.T) {
	svc, _ := newTestService()

	created := makePatient(t, svc, "1199000000002")

	updated, err := svc.UpdatePatient(context.Background(), created.ID, &Patient{
		FirstName:  "Fatou",
		LastName:   "Ndiaye-Sall",
		NationalID: created.NationalID,
		Phone:      created.Phone,
		Active:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Ndiaye-Sall", updated.LastName)
}

func TestCreateContractRequiresPatientAndInsurer(t *testing.T) {
	svc, _ := newTestService()

	ins := makeInsurer(t, svc, "AXA")

	_, err := svc.CreateContract(context.Background(), &InsuranceContract{
		ContractNumber: "CTR-1",
		ContractType:   "Standard",
		StartDate:      time.Now(),
		PatientID:      uuid.New(),
		InsuranceID:    ins.ID,
	})
	assert.True(t, errors.Is(err, ErrPatientNotFound))

	p := makePatient(t, svc, "1199000000003")
	_, err = svc.CreateContract(context.Background(), &InsuranceContract{
		ContractNumber: "CTR-2",
		ContractType:   "Standard",
		StartDate:      time.Now(),
		PatientID:      p.ID,
		InsuranceID:    uuid.New(),
	})
	assert.True(t, errors.Is(err, ErrInsuranceNotFound))
}

func TestCoverageLifecycle(t *testing.T) {
	svc, _ := newTestService()

	p := makePatient(t, svc, "1199000000004")
	ins := makeInsurer(t, svc, "NSIA")
	c := makeContract(t, svc, p.ID, ins.ID, "CTR-3", true)

	dentaireCeiling := 500000.0
	dentaire, err := svc.AddCoverage(context.Background(), c.ID, &Coverage{
		CoverageType:    "dentaire",
		CoverageRate:    80,
		CoverageCeiling: &dentaireCeiling,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, dentaire.ContractID)

	optiqueCeiling := 200000.0
	optique, err := svc.AddCoverage(context.Background(), c.ID, &Coverage{
		CoverageType:    "optique",
		CoverageRate:    70,
		CoverageCeiling: &optiqueCeiling,
	})
	require.NoError(t, err)

	list, err := svc.ListCoverages(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.RemoveCoverage(context.Background(), optique.ID))

	list, err = svc.ListCoverages(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dentaire", list[0].CoverageType)
	assert.Equal(t, 80, list[0].CoverageRate)
}

func TestAddCoverageUnknownContract(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddCoverage(context.Background(), uuid.New(), &Coverage{
		CoverageType: "pharmacie",
		CoverageRate: 50,
	})
	assert.True(t, errors.Is(err, ErrContractNotFound))
}

func TestDeleteContractRemovesCoverages(t *testing.T) {
	svc, repo := newTestService()

	p := makePatient(t, svc, "1199000000005")
	ins := makeInsurer(t, svc, "SUNU")
	c := makeContract(t, svc, p.ID, ins.ID, "CTR-4", true)

	_, err := svc.AddCoverage(context.Background(), c.ID, &Coverage{
		CoverageType: "hospitalisation",
		CoverageRate: 90,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContract(context.Background(), c.ID))

	_, err = svc.GetContract(context.Background(), c.ID)
	assert.True(t, errors.Is(err, ErrContractNotFound))
	assert.Empty(t, repo.coverages)
}

func TestCurrentInsuranceFirstActiveInInsertionOrder(t *testing.T) {
	svc, _ := newTestService()

	p := makePatient(t, svc, "1199000000006")
	first := makeInsurer(t, svc, "Première")
	second := makeInsurer(t, svc, "Seconde")

	makeContract(t, svc, p.ID, first.ID, "CTR-5", false)
	makeContract(t, svc, p.ID, second.ID, "CTR-6", true)
	makeContract(t, svc, p.ID, first.ID, "CTR-7", true)

	ins, err := svc.CurrentInsurance(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, ins)
	assert.Equal(t, second.ID, ins.ID)
}

func TestCurrentInsuranceNoActiveContract(t *testing.T) {
	svc, _ := newTestService()

	p := makePatient(t, svc, "1199000000007")
	ins := makeInsurer(t, svc, "Askia")
	makeContract(t, svc, p.ID, ins.ID, "CTR-8", false)

	got, err := svc.CurrentInsurance(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCurrentInsuranceUnknownPatient(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CurrentInsurance(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrPatientNotFound))
}
