package doctor

import "context"

type Repository interface {
	Create(ctx context.Context, cmd *CreateDoctorCommand) (*Doctor, error)
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context, q *ListDoctorsQuery) ([]*Doctor, error)
	Update(ctx context.Context, id int64, cmd *UpdateDoctorCommand) (*Doctor, error)
	Delete(ctx context.Context, id int64) error
}
