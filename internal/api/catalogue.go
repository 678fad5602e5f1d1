package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erazemk/omara/internal/imaging"
	"github.com/erazemk/omara/internal/model"
	"github.com/erazemk/omara/internal/nav"
	"github.com/erazemk/omara/internal/view"
)

// CatalogueHandler drives the outfit catalogue.
type CatalogueHandler struct {
	Catalogue *nav.Coordinator
	View      *view.Recorder
}

type outfitResponse struct {
	Slot   int          `json:"slot"`
	Outfit model.Outfit `json:"outfit"`
}

type mutationResponse struct {
	Slot      int           `json:"slot"`
	Persisted bool          `json:"persisted"`
	View      view.Snapshot `json:"view"`
}

type formRequest struct {
	SectionName *string `json:"section_name"`
	Category    *string `json:"category"`
	TimeOfDay   *string `json:"time_of_day"`
}

type wearRequest struct {
	Name      string `json:"name"`
	Materials string `json:"materials"`
}

type wearRowResponse struct {
	Row  int           `json:"row"`
	View view.Snapshot `json:"view"`
}

// GetView handles GET /api/view.
func (h *CatalogueHandler) GetView(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.View.Snapshot())
}

// ListOutfits handles GET /api/outfits.
func (h *CatalogueHandler) ListOutfits(w http.ResponseWriter, r *http.Request) {
	entries := h.Catalogue.Outfits()
	out := make([]outfitResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, outfitResponse{Slot: e.Slot, Outfit: e.Outfit})
	}
	jsonResponse(w, http.StatusOK, out)
}

// StartCreate handles POST /api/nav/create.
func (h *CatalogueHandler) StartCreate(w http.ResponseWriter, r *http.Request) {
	h.event(w, h.Catalogue.StartCreate())
}

// Open handles POST /api/nav/open/{slot}.
func (h *CatalogueHandler) Open(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r, "slot")
	if !ok {
		return
	}
	h.event(w, h.Catalogue.Remote().Open(i))
}

// OpenWear handles POST /api/nav/wear/{index}.
func (h *CatalogueHandler) OpenWear(w http.ResponseWriter, r *http.Request) {
	j, ok := pathIndex(w, r, "index")
	if !ok {
		return
	}
	h.event(w, h.Catalogue.Remote().OpenWear(j))
}

// Edit handles POST /api/nav/edit.
func (h *CatalogueHandler) Edit(w http.ResponseWriter, r *http.Request) {
	h.event(w, h.Catalogue.Edit())
}

// Back handles POST /api/nav/back.
func (h *CatalogueHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.event(w, h.Catalogue.Back())
}

// Cancel handles POST /api/nav/cancel.
func (h *CatalogueHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.event(w, h.Catalogue.Cancel())
}

// Delete handles POST /api/nav/delete.
func (h *CatalogueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	out, err := h.Catalogue.Delete(r.Context())
	h.mutation(w, out, err)
}

// Submit handles POST /api/nav/submit.
func (h *CatalogueHandler) Submit(w http.ResponseWriter, r *http.Request) {
	out, err := h.Catalogue.Submit(r.Context())
	h.mutation(w, out, err)
}

// SetForm handles PUT /api/form. Fields left out of the body are unchanged.
func (h *CatalogueHandler) SetForm(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := []struct {
		field nav.Field
		value *string
	}{
		{nav.FieldSectionName, req.SectionName},
		{nav.FieldCategory, req.Category},
		{nav.FieldTimeOfDay, req.TimeOfDay},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := h.Catalogue.SetField(f.field, *f.value); err != nil {
			catalogueError(w, err)
			return
		}
	}
	h.form(w)
}

// GetForm handles GET /api/form.
func (h *CatalogueHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	h.form(w)
}

// AddWear handles POST /api/form/wears.
func (h *CatalogueHandler) AddWear(w http.ResponseWriter, r *http.Request) {
	row, err := h.Catalogue.AddWearRow()
	if err != nil {
		catalogueError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, wearRowResponse{Row: row, View: h.View.Snapshot()})
}

// SetWear handles PUT /api/form/wears/{row}.
func (h *CatalogueHandler) SetWear(w http.ResponseWriter, r *http.Request) {
	row, ok := h.formRow(w, r)
	if !ok {
		return
	}
	var req wearRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Catalogue.Remote().SetWearText(row, req.Name, req.Materials); err != nil {
		catalogueError(w, err)
		return
	}
	h.form(w)
}

// RemoveWear handles DELETE /api/form/wears/{row}.
func (h *CatalogueHandler) RemoveWear(w http.ResponseWriter, r *http.Request) {
	row, ok := h.formRow(w, r)
	if !ok {
		return
	}
	if err := h.Catalogue.Remote().RemoveWearRow(row); err != nil {
		catalogueError(w, err)
		return
	}
	h.form(w)
}

// UploadWearPhoto handles PUT /api/form/wears/{row}/photo.
func (h *CatalogueHandler) UploadWearPhoto(w http.ResponseWriter, r *http.Request) {
	row, ok := h.formRow(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Photo(file)
	switch {
	case errors.Is(err, imaging.ErrUnsupported):
		jsonError(w, http.StatusUnsupportedMediaType, "photo must be JPEG or PNG")
		return
	case errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, "photo too large")
		return
	case err != nil:
		jsonError(w, http.StatusBadRequest, "invalid photo")
		return
	}

	if err := h.Catalogue.Remote().SetWearPhoto(row, photo); err != nil {
		catalogueError(w, err)
		return
	}
	h.form(w)
}

// RemoveWearPhoto handles DELETE /api/form/wears/{row}/photo.
func (h *CatalogueHandler) RemoveWearPhoto(w http.ResponseWriter, r *http.Request) {
	row, ok := h.formRow(w, r)
	if !ok {
		return
	}
	if err := h.Catalogue.Remote().SetWearPhoto(row, nil); err != nil {
		catalogueError(w, err)
		return
	}
	h.form(w)
}

// GetWearPhoto handles GET /api/outfits/{slot}/wears/{index}/photo.
func (h *CatalogueHandler) GetWearPhoto(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r, "slot")
	if !ok {
		return
	}
	j, ok := pathIndex(w, r, "index")
	if !ok {
		return
	}

	o, found := h.Catalogue.Outfit(i)
	if !found || j >= len(o.WearItems) {
		jsonError(w, http.StatusNotFound, "wear item not found")
		return
	}
	wear := o.WearItems[j]
	if !wear.HasPhoto() {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(wear.Photo))
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(wear.Photo)
}

func (h *CatalogueHandler) event(w http.ResponseWriter, err error) {
	if err != nil {
		catalogueError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, h.View.Snapshot())
}

func (h *CatalogueHandler) mutation(w http.ResponseWriter, out nav.Outcome, err error) {
	if err != nil {
		catalogueError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, mutationResponse{
		Slot:      out.Slot,
		Persisted: out.Persisted(),
		View:      h.View.Snapshot(),
	})
}

type formResponse struct {
	SectionName string     `json:"section_name"`
	Category    string     `json:"category"`
	TimeOfDay   string     `json:"time_of_day"`
	Rows        []formWear `json:"rows"`
	Missing     []string   `json:"missing"`
	Valid       bool       `json:"valid"`
}

type formWear struct {
	Row       int    `json:"row"`
	Name      string `json:"name"`
	Materials string `json:"materials"`
	HasPhoto  bool   `json:"has_photo"`
}

func (h *CatalogueHandler) form(w http.ResponseWriter) {
	snap, ok := h.Catalogue.Form()
	if !ok {
		jsonError(w, http.StatusConflict, "no form open")
		return
	}
	resp := formResponse{
		SectionName: snap.SectionName,
		Category:    snap.Category,
		TimeOfDay:   snap.TimeOfDay,
		Rows:        make([]formWear, 0, len(snap.Rows)),
		Missing:     snap.Missing,
		Valid:       snap.Valid(),
	}
	for _, row := range snap.Rows {
		resp.Rows = append(resp.Rows, formWear{
			Row:       row.Row,
			Name:      row.Item.Name,
			Materials: row.Item.Materials,
			HasPhoto:  row.Item.HasPhoto(),
		})
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (h *CatalogueHandler) formRow(w http.ResponseWriter, r *http.Request) (int, bool) {
	return pathIndex(w, r, "row")
}

func pathIndex(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	i, err := strconv.Atoi(r.PathValue(name))
	if err != nil || i < 0 {
		jsonError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return i, true
}
