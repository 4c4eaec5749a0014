package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hotelops/infras/otel"
	"hotelops/infras/recordapi"
	"hotelops/internal/domains/guest/model"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

const (
	remoteIDField   = "Id"
	remoteNameField = "Name"
)

var errNoRecordReturned = errors.New("record store returned no record")

// fieldMapping binds one guest attribute to its column in the hosted table. toRemote renders
// the local value, fromRemote writes a decoded remote value back onto the guest.
type fieldMapping struct {
	local      string
	remote     string
	toRemote   func(g model.Guest) any
	fromRemote func(g *model.Guest, v any)
}

var guestFields = []fieldMapping{
	{
		local: "firstName", remote: "first_name_c",
		toRemote:   func(g model.Guest) any { return g.FirstName },
		fromRemote: func(g *model.Guest, v any) { g.FirstName = asString(v) },
	},
	{
		local: "lastName", remote: "last_name_c",
		toRemote:   func(g model.Guest) any { return g.LastName },
		fromRemote: func(g *model.Guest, v any) { g.LastName = asString(v) },
	},
	{
		local: "email", remote: "email_c",
		toRemote:   func(g model.Guest) any { return g.Email },
		fromRemote: func(g *model.Guest, v any) { g.Email = asString(v) },
	},
	{
		local: "phone", remote: "phone_c",
		toRemote:   func(g model.Guest) any { return g.Phone },
		fromRemote: func(g *model.Guest, v any) { g.Phone = asString(v) },
	},
	{
		local: "idType", remote: "id_type_c",
		toRemote:   func(g model.Guest) any { return g.IDType },
		fromRemote: func(g *model.Guest, v any) { g.IDType = asString(v) },
	},
	{
		local: "idNumber", remote: "id_number_c",
		toRemote:   func(g model.Guest) any { return g.IDNumber },
		fromRemote: func(g *model.Guest, v any) { g.IDNumber = asString(v) },
	},
	{
		local: "address", remote: "address_c",
		toRemote:   func(g model.Guest) any { return asJSON(g.Address) },
		fromRemote: func(g *model.Guest, v any) { fromJSON(v, &g.Address) },
	},
	{
		local: "preferences", remote: "preferences_c",
		toRemote:   func(g model.Guest) any { return strings.Join(g.Preferences, ",") },
		fromRemote: func(g *model.Guest, v any) { g.Preferences = splitList(asString(v)) },
	},
	{
		local: "vipStatus", remote: "vip_status_c",
		toRemote:   func(g model.Guest) any { return g.VIPStatus },
		fromRemote: func(g *model.Guest, v any) { g.VIPStatus = asBool(v) },
	},
	{
		local: "loyaltyProgram.tier", remote: "loyalty_program_c",
		toRemote:   func(g model.Guest) any { return g.LoyaltyProgram.Tier },
		fromRemote: func(g *model.Guest, v any) { g.LoyaltyProgram.Tier = asString(v) },
	},
	{
		local: "loyaltyProgram.points", remote: "loyalty_points_c",
		toRemote:   func(g model.Guest) any { return g.LoyaltyProgram.Points },
		fromRemote: func(g *model.Guest, v any) { g.LoyaltyProgram.Points = int(asDecimal(v).IntPart()) },
	},
	{
		local: "loyaltyProgram.joinDate", remote: "join_date_c",
		toRemote:   func(g model.Guest) any { return g.LoyaltyProgram.JoinDate },
		fromRemote: func(g *model.Guest, v any) { g.LoyaltyProgram.JoinDate = asString(v) },
	},
	{
		local: "accountType", remote: "account_type_c",
		toRemote:   func(g model.Guest) any { return g.AccountType },
		fromRemote: func(g *model.Guest, v any) { g.AccountType = asString(v) },
	},
	{
		local: "companyName", remote: "company_name_c",
		toRemote:   func(g model.Guest) any { return g.CompanyName },
		fromRemote: func(g *model.Guest, v any) { g.CompanyName = asString(v) },
	},
	{
		local: "companyRegistration", remote: "company_registration_c",
		toRemote:   func(g model.Guest) any { return g.CompanyRegistration },
		fromRemote: func(g *model.Guest, v any) { g.CompanyRegistration = asString(v) },
	},
	{
		local: "taxId", remote: "tax_id_c",
		toRemote:   func(g model.Guest) any { return g.TaxID },
		fromRemote: func(g *model.Guest, v any) { g.TaxID = asString(v) },
	},
	{
		local: "billingContact", remote: "billing_contact_c",
		toRemote:   func(g model.Guest) any { return g.BillingContact },
		fromRemote: func(g *model.Guest, v any) { g.BillingContact = asString(v) },
	},
	{
		local: "creditLimit", remote: "credit_limit_c",
		toRemote:   func(g model.Guest) any { return g.CreditLimit.InexactFloat64() },
		fromRemote: func(g *model.Guest, v any) { g.CreditLimit = asDecimal(v) },
	},
	{
		local: "paymentTerms", remote: "payment_terms_c",
		toRemote:   func(g model.Guest) any { return g.PaymentTerms },
		fromRemote: func(g *model.Guest, v any) { g.PaymentTerms = asString(v) },
	},
	{
		local: "corporateDiscount", remote: "corporate_discount_c",
		toRemote:   func(g model.Guest) any { return g.CorporateDiscount.InexactFloat64() },
		fromRemote: func(g *model.Guest, v any) { g.CorporateDiscount = asDecimal(v) },
	},
	{
		local: "stayHistory", remote: "stay_history_c",
		toRemote:   func(g model.Guest) any { return asJSON(g.StayHistory) },
		fromRemote: func(g *model.Guest, v any) { fromJSON(v, &g.StayHistory) },
	},
}

func remoteFields() []string {
	fields := make([]string, 0, len(guestFields)+1)
	fields = append(fields, remoteNameField)

	for _, f := range guestFields {
		fields = append(fields, f.remote)
	}

	return fields
}

// toRecord renders every updateable field. The record id is added only for updates.
func toRecord(g model.Guest) recordapi.Record {
	record := recordapi.Record{remoteNameField: g.Name()}
	for _, f := range guestFields {
		record[f.remote] = f.toRemote(g)
	}

	if g.ID > 0 {
		record[remoteIDField] = g.ID
	}

	return record
}

func fromRecord(record recordapi.Record) model.Guest {
	guest := model.Guest{
		ID:          asDecimal(record[remoteIDField]).IntPart(),
		Preferences: []string{},
		StayHistory: []model.Stay{},
	}

	for _, f := range guestFields {
		v, ok := record[f.remote]
		if !ok || v == nil {
			log.Debug().Str("field", f.local).Str("remote", f.remote).Msg("guest field missing from record")

			continue
		}

		f.fromRemote(&guest, v)
	}

	if guest.AccountType == "" {
		guest.AccountType = model.AccountTypeIndividual
	}

	return guest
}

// Remote keeps guests in the hosted record store. The store has no conditional update, so
// Modify is a read followed by a write.
type Remote struct {
	client recordapi.Client
	otel   otel.Otel
}

func NewRemote(client recordapi.Client, otl otel.Otel) *Remote {
	return &Remote{client: client, otel: otl}
}

func (r *Remote) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.remote."+op)
}

func (r *Remote) All(ctx context.Context) (res []model.Guest, err error) {
	ctx, scope := r.scope(ctx, "All")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	records, err := r.client.Fetch(ctx, model.RemoteTableName, recordapi.Query{Fields: remoteFields()})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch guests")

		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}

	res = make([]model.Guest, len(records))
	for i, record := range records {
		res[i] = fromRecord(record)
	}

	return res, nil
}

func (r *Remote) Get(ctx context.Context, id int64) (res model.Guest, err error) {
	ctx, scope := r.scope(ctx, "Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	record, err := r.client.GetByID(ctx, model.RemoteTableName, id, remoteFields())
	if err != nil {
		if failure.IsNotFound(err) {
			return res, failure.EntityNotFound(model.EntityName, id)
		}

		log.Error().Err(err).Int64("id", id).Msg("failed to fetch guest")

		return res, fmt.Errorf("failed to fetch guest: %w", err)
	}

	return fromRecord(record), nil
}

func (r *Remote) Insert(ctx context.Context, guest model.Guest) (res model.Guest, err error) {
	ctx, scope := r.scope(ctx, "Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	created, err := r.InsertBatch(ctx, []model.Guest{guest})
	if err != nil {
		return res, err
	}

	return created[0], nil
}

// InsertBatch sends every guest in one request. The hosted store reports per-record
// results, and any rejection fails the whole call.
func (r *Remote) InsertBatch(ctx context.Context, guests []model.Guest) (res []model.Guest, err error) {
	ctx, scope := r.scope(ctx, "InsertBatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	records := make([]recordapi.Record, len(guests))
	for i, guest := range guests {
		guest.ID = 0
		records[i] = toRecord(guest)
	}

	created, err := r.client.Create(ctx, model.RemoteTableName, records...)
	if err != nil {
		log.Error().Err(err).Int("count", len(guests)).Msg("failed to create guests")

		return nil, fmt.Errorf("failed to create guests: %w", err)
	}

	if len(created) != len(guests) {
		return nil, errNoRecordReturned
	}

	res = make([]model.Guest, len(created))
	for i, record := range created {
		res[i] = merge(guests[i], fromRecord(record))
	}

	return res, nil
}

func (r *Remote) Modify(ctx context.Context, id int64, fn func(current model.Guest) (model.Guest, error)) (res model.Guest, err error) {
	ctx, scope := r.scope(ctx, "Modify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := r.Get(ctx, id)
	if err != nil {
		return res, err
	}

	next, err := fn(current)
	if err != nil {
		return res, err
	}

	next.ID = id

	updated, err := r.client.Update(ctx, model.RemoteTableName, toRecord(next))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update guest")

		return res, fmt.Errorf("failed to update guest: %w", err)
	}

	if len(updated) == 0 {
		return next, nil
	}

	return merge(next, fromRecord(updated[0])), nil
}

func (r *Remote) Delete(ctx context.Context, id int64) (res model.Guest, err error) {
	ctx, scope := r.scope(ctx, "Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = r.Get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = r.client.Delete(ctx, model.RemoteTableName, id); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete guest")

		return res, fmt.Errorf("failed to delete guest: %w", err)
	}

	return res, nil
}

// merge keeps the local fields the hosted table does not carry and takes the rest from the
// stored record.
func merge(local, stored model.Guest) model.Guest {
	stored.CreatedAt = local.CreatedAt
	if stored.ID == 0 {
		stored.ID = local.ID
	}

	return stored
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	default:
		return false
	}
}

func asDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case float64:
		return decimal.NewFromFloat(val)
	case int64:
		return decimal.NewFromInt(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case json.Number:
		d, _ := decimal.NewFromString(val.String())
		return d
	case string:
		d, _ := decimal.NewFromString(val)
		return d
	default:
		return decimal.Zero
	}
}

func asJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return string(b)
}

func fromJSON(v any, dst any) {
	raw := asString(v)
	if raw == "" {
		return
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Warn().Err(err).Msg("failed to decode guest field from record store")
	}
}

func splitList(raw string) []string {
	list := []string{}

	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
