package medicalrecord

import "context"

type Repository interface {
	Create(ctx context.Context, cmd *CreateRecordCommand) (*MedicalRecord, error)
	GetByID(ctx context.Context, id int64) (*MedicalRecord, error)
	List(ctx context.Context, q *ListRecordsQuery) ([]*MedicalRecord, error)
	Update(ctx context.Context, id int64, cmd *UpdateRecordCommand) (*MedicalRecord, error)
	Delete(ctx context.Context, id int64) error
}
