package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kutbudev/contactbook/internal/apperr"
	"github.com/kutbudev/contactbook/internal/metrics"
	"github.com/kutbudev/contactbook/pkg/models"
	"github.com/kutbudev/contactbook/pkg/repository"
	"github.com/sirupsen/logrus"
)

// CreateGroupInput is the body of POST /group.
type CreateGroupInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Contacts []uint `json:"contacts"`
}

// UpdateGroupInput is the body of PUT /group/{id}. A null name is rejected.
type UpdateGroupInput struct {
	Name *string `json:"name" binding:"omitnil,min=1,max=100"`

	// keys sent in the body, set by UnmarshalJSON
	present map[string]bool
}

func (in *UpdateGroupInput) UnmarshalJSON(b []byte) error {
	type body UpdateGroupInput
	var decoded body
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	present, err := jsonKeys(b)
	if err != nil {
		return err
	}
	*in = UpdateGroupInput(decoded)
	in.present = present
	return nil
}

// DeletedGroup is returned by Delete.
type DeletedGroup struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type GroupService struct {
	db     *repository.Database
	groups *repository.GroupRepository
	linker *relationLinker
	log    logrus.FieldLogger
}

func NewGroupService(db *repository.Database, m *metrics.Metrics, log logrus.FieldLogger) *GroupService {
	log = log.WithField("component", "groups")
	return &GroupService{
		db:     db,
		groups: repository.NewGroupRepository(db),
		linker: &relationLinker{
			db:        db,
			relations: repository.NewRelationRepository(db),
			metrics:   m,
			log:       log,
		},
		log: log,
	}
}

func (s *GroupService) List(ctx context.Context) ([]models.GroupView, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return models.SerializeGroups(groups), nil
}

func (s *GroupService) Get(ctx context.Context, id uint) (models.GroupView, error) {
	group, err := s.find(ctx, id)
	if err != nil {
		return models.GroupView{}, err
	}
	return group.Serialize(), nil
}

// Create inserts the group, then one relation per contact id. Relation failures never
// fail the request.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput) (models.GroupView, error) {
	group := &models.Group{Name: in.Name}
	err := s.db.TxFn(ctx, func(ctx context.Context) error {
		return s.groups.Create(ctx, group)
	})
	if err != nil {
		return models.GroupView{}, apperr.Wrap(http.StatusBadRequest, MsgGroupCreateFailed, err)
	}

	linked := 0
	for _, contactID := range in.Contacts {
		if s.linker.link(ctx, "group", contactID, group.ID) {
			linked++
		}
	}
	s.log.WithFields(logrus.Fields{
		"group_id":  group.ID,
		"relations": linked,
		"requested": len(in.Contacts),
	}).Info("group created")

	return s.Get(ctx, group.ID)
}

func (s *GroupService) Update(ctx context.Context, id uint, in UpdateGroupInput) (models.GroupView, error) {
	group, err := s.find(ctx, id)
	if err != nil {
		return models.GroupView{}, err
	}
	columns, err := buildColumns([]optionalColumn{{name: "name", value: in.Name}}, in.present)
	if err != nil {
		return models.GroupView{}, err
	}
	err = s.db.TxFn(ctx, func(ctx context.Context) error {
		return s.groups.Update(ctx, group, columns)
	})
	if err != nil {
		return models.GroupView{}, apperr.Internal(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the group. Its relation rows stay behind, detached.
func (s *GroupService) Delete(ctx context.Context, id uint) (DeletedGroup, error) {
	group, err := s.find(ctx, id)
	if err != nil {
		return DeletedGroup{}, err
	}
	err = s.db.TxFn(ctx, func(ctx context.Context) error {
		return s.groups.Delete(ctx, id)
	})
	if err != nil {
		return DeletedGroup{}, apperr.Internal(err)
	}
	s.log.WithFields(logrus.Fields{
		"group_id":           id,
		"detached_relations": len(group.Relations),
	}).Info("group deleted")
	return DeletedGroup{ID: group.ID, Name: group.Name}, nil
}

func (s *GroupService) find(ctx context.Context, id uint) (*models.Group, error) {
	group, err := s.groups.Get(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound(MsgGroupNotFound)
		}
		return nil, apperr.Internal(err)
	}
	return group, nil
}
