package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/talent-scout/internal/domain/media"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/usecase"
)

// multipart bodies may carry a few small text fields next to the files.
const multipartOverheadBytes = 1 << 20

// File paths are never read from the body; they come only from uploads.
type playerUpdateRequest struct {
	Name             *string             `json:"name" validate:"omitempty,max=120"`
	Sport            *string             `json:"sport"`
	Age              *int                `json:"age"`
	Gender           *string             `json:"gender"`
	Location         *string             `json:"location" validate:"omitempty,max=200"`
	Mobile           *string             `json:"mobile" validate:"omitempty,max=32"`
	Height           *float64            `json:"height"`
	Weight           *float64            `json:"weight"`
	DreamClub        *string             `json:"dreamClub" validate:"omitempty,max=120"`
	Skills           *[]string           `json:"skills" validate:"omitempty,max=50,dive,max=60"`
	AchievementsText *string             `json:"achievementsText" validate:"omitempty,max=4000"`
	PerformanceData  jsoniter.RawMessage `json:"performanceData"`
}

type clubUpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=120"`
	Address        *string `json:"address" validate:"omitempty,max=300"`
	FoundationDate *string `json:"foundationDate"`
	ContactPerson  *string `json:"contactPerson" validate:"omitempty,max=120"`
	ContactMobile  *string `json:"contactMobile" validate:"omitempty,max=32"`
	ContactEmail   *string `json:"contactEmail" validate:"omitempty,email,max=254"`
}

// decodeProfileUpdate reads either a JSON body or a multipart form with
// optional files. cleanup is always safe to call.
func (h *Handler) decodeProfileUpdate(ctx context.Context, w http.ResponseWriter, r *http.Request, rawKind string) (profile.Patch, []media.Upload, func(), error) {
	cleanup := func() {}
	kind, err := profile.ParseKind(rawKind)
	if err != nil {
		return profile.Patch{}, nil, cleanup, err
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.decodeMultipartUpdate(ctx, w, r, kind)
	}

	switch kind {
	case profile.KindPlayer:
		var req playerUpdateRequest
		if err := h.decodeJSON(ctx, w, r, &req); err != nil {
			return profile.Patch{}, nil, cleanup, err
		}
		pp, err := req.toPatch()
		if err != nil {
			return profile.Patch{}, nil, cleanup, err
		}
		return profile.Patch{Kind: kind, Player: pp}, nil, cleanup, nil
	default:
		var req clubUpdateRequest
		if err := h.decodeJSON(ctx, w, r, &req); err != nil {
			return profile.Patch{}, nil, cleanup, err
		}
		return profile.Patch{Kind: kind, Club: req.toPatch()}, nil, cleanup, nil
	}
}

func (h *Handler) decodeMultipartUpdate(ctx context.Context, w http.ResponseWriter, r *http.Request, kind profile.Kind) (profile.Patch, []media.Upload, func(), error) {
	cleanup := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverheadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return profile.Patch{}, nil, cleanup, fmt.Errorf("%w: upload exceeds %d bytes", usecase.ErrInvalidInput, h.maxUploadBytes)
		}
		return profile.Patch{}, nil, cleanup, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
	}

	var opened []multipart.File
	cleanup = func() {
		for _, f := range opened {
			_ = f.Close()
		}
		_ = r.MultipartForm.RemoveAll()
	}

	patch := profile.Patch{Kind: kind}
	switch kind {
	case profile.KindPlayer:
		req, err := playerRequestFromForm(r.MultipartForm.Value)
		if err == nil {
			err = h.validateRequest(ctx, req)
		}
		if err == nil {
			patch.Player, err = req.toPatch()
		}
		if err != nil {
			return profile.Patch{}, nil, cleanup, err
		}
	default:
		req, err := clubRequestFromForm(r.MultipartForm.Value)
		if err == nil {
			err = h.validateRequest(ctx, req)
		}
		if err != nil {
			return profile.Patch{}, nil, cleanup, err
		}
		patch.Club = req.toPatch()
	}

	uploads := make([]media.Upload, 0, len(r.MultipartForm.File))
	for field, headers := range r.MultipartForm.File {
		if len(headers) != 1 {
			return profile.Patch{}, nil, cleanup, fmt.Errorf("%w: expected one file for %q", profile.ErrInvalidPayload, field)
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return profile.Patch{}, nil, cleanup, fmt.Errorf("%w: open upload %q: %v", usecase.ErrInvalidInput, field, err)
		}
		opened = append(opened, f)
		uploads = append(uploads, media.Upload{
			Field:       field,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	return patch, uploads, cleanup, nil
}

func (req playerUpdateRequest) toPatch() (*profile.PlayerPatch, error) {
	pp := &profile.PlayerPatch{
		Name:             req.Name,
		Sport:            req.Sport,
		Age:              req.Age,
		Gender:           req.Gender,
		Location:         req.Location,
		Mobile:           req.Mobile,
		Height:           req.Height,
		Weight:           req.Weight,
		DreamClub:        req.DreamClub,
		Skills:           req.Skills,
		AchievementsText: req.AchievementsText,
	}

	raw := bytes.TrimSpace(req.PerformanceData)
	switch {
	case len(raw) == 0:
	case raw[0] == '"':
		var encoded string
		if err := jsoniter.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("%w: performanceData: %v", profile.ErrInvalidPayload, err)
		}
		pp.PerformanceData = &encoded
	default:
		encoded := string(raw)
		pp.PerformanceData = &encoded
	}
	return pp, nil
}

func (req clubUpdateRequest) toPatch() *profile.ClubPatch {
	return &profile.ClubPatch{
		Name:           req.Name,
		Address:        req.Address,
		FoundationDate: req.FoundationDate,
		ContactPerson:  req.ContactPerson,
		ContactMobile:  req.ContactMobile,
		ContactEmail:   req.ContactEmail,
	}
}

func playerRequestFromForm(values map[string][]string) (playerUpdateRequest, error) {
	var req playerUpdateRequest
	for key, vals := range values {
		v := firstValue(vals)
		switch key {
		case "name":
			req.Name = &v
		case "sport":
			req.Sport = &v
		case "gender":
			req.Gender = &v
		case "location":
			req.Location = &v
		case "mobile":
			req.Mobile = &v
		case "dreamClub":
			req.DreamClub = &v
		case "achievementsText":
			req.AchievementsText = &v
		case "performanceData":
			encoded, err := jsoniter.Marshal(v)
			if err != nil {
				return playerUpdateRequest{}, fmt.Errorf("%w: performanceData: %v", profile.ErrInvalidPayload, err)
			}
			req.PerformanceData = encoded
		case "age":
			n, err := parseFormInt(key, v)
			if err != nil {
				return playerUpdateRequest{}, err
			}
			req.Age = &n
		case "height":
			f, err := parseFormFloat(key, v)
			if err != nil {
				return playerUpdateRequest{}, err
			}
			req.Height = &f
		case "weight":
			f, err := parseFormFloat(key, v)
			if err != nil {
				return playerUpdateRequest{}, err
			}
			req.Weight = &f
		case "skills":
			skills, err := parseFormList(vals)
			if err != nil {
				return playerUpdateRequest{}, err
			}
			req.Skills = &skills
		default:
			return playerUpdateRequest{}, fmt.Errorf("%w: unknown field %q", usecase.ErrInvalidInput, key)
		}
	}
	return req, nil
}

func clubRequestFromForm(values map[string][]string) (clubUpdateRequest, error) {
	var req clubUpdateRequest
	for key, vals := range values {
		v := firstValue(vals)
		switch key {
		case "name":
			req.Name = &v
		case "address":
			req.Address = &v
		case "foundationDate":
			req.FoundationDate = &v
		case "contactPerson":
			req.ContactPerson = &v
		case "contactMobile":
			req.ContactMobile = &v
		case "contactEmail":
			req.ContactEmail = &v
		default:
			return clubUpdateRequest{}, fmt.Errorf("%w: unknown field %q", usecase.ErrInvalidInput, key)
		}
	}
	return req, nil
}

func firstValue(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func parseFormInt(key, v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", profile.ErrInvalidPayload, key)
	}
	return n, nil
}

func parseFormFloat(key, v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", profile.ErrInvalidPayload, key)
	}
	return f, nil
}

// parseFormList accepts repeated fields, a JSON array or a comma separated list.
func parseFormList(vals []string) ([]string, error) {
	if len(vals) == 1 {
		v := strings.TrimSpace(vals[0])
		if strings.HasPrefix(v, "[") {
			var out []string
			if err := jsoniter.UnmarshalFromString(v, &out); err != nil {
				return nil, fmt.Errorf("%w: skills: %v", profile.ErrInvalidPayload, err)
			}
			return out, nil
		}
		vals = strings.Split(v, ",")
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}
