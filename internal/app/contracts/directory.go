package contracts

import "context"

// PatientDirectory resolves patient identities managed outside this service.
type PatientDirectory interface {
	PatientExists(ctx context.Context, patientID string) (bool, error)
}

// DoctorDirectory resolves doctor identities and their availability flag.
type DoctorDirectory interface {
	DoctorExists(ctx context.Context, doctorID string) (bool, error)
	IsDoctorAvailable(ctx context.Context, doctorID string) (bool, error)
}
