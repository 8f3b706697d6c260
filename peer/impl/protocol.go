package impl

import (
	"context"
	"crypto/cipher"
	"sort"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/util/random"
	"go.dedis.ch/sigvss/peer/impl/faultlog"
	"go.dedis.ch/sigvss/peer/impl/keyregistry"
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/transport"
	"go.dedis.ch/sigvss/transport/channel"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Rounds of a run
const (
	roundDeal uint = iota + 1
	roundReceive
	roundForward
	roundReconstruct
	roundClient
)

const digestSize = 32

func reconstructorIndex(params types.PublicParameters, r int) int {
	return params.N + r
}

func clientIndex(params types.PublicParameters) int {
	return params.N + params.T + 2
}

// run holds the state of one execution.
type run struct {
	*vss

	id       string
	params   types.PublicParameters
	scheme   signature.Scheme
	network  *channel.Network
	faults   faultlog.FaultLog
	registry keyregistry.KeyRegistry
	verifier *signature.Verifier

	transcript *Transcript
	metrics    metrics.Registry

	sync.Mutex
	elapsed map[int]time.Duration
}

// Execute implements peer.VSS
func (v *vss) Execute(ctx context.Context, secret kyber.Scalar) (types.Report, error) {
	r, err := v.newRun()
	if err != nil {
		return types.Report{}, err
	}

	log.Info().Str("run", r.id).
		Int("t", r.params.T).
		Int("n", r.params.N).
		Str("scheme", r.scheme.Name()).
		Msg("starting run")

	dealerPK, err := r.deal(ctx, secret)
	if err != nil {
		return types.Report{}, xerrors.Errorf("dealer round: %w", err)
	}

	receivers, err := r.receive(ctx, dealerPK)
	if err != nil {
		return types.Report{}, xerrors.Errorf("receiver round: %w", err)
	}

	err = r.forward(ctx, receivers, dealerPK)
	if err != nil {
		return types.Report{}, xerrors.Errorf("forward round: %w", err)
	}

	err = r.reconstruct(ctx)
	if err != nil {
		return types.Report{}, xerrors.Errorf("reconstruct round: %w", err)
	}

	recoverable, recovered, err := r.compute(ctx)
	if err != nil {
		return types.Report{}, xerrors.Errorf("client round: %w", err)
	}

	report := r.report(recoverable, recovered)

	log.Info().Str("run", r.id).
		Bool("recoverable", recoverable).
		Int("faults", len(report.Faults)).
		Msg("run done")

	return report, nil
}

func (v *vss) newRun() (*run, error) {
	params := v.conf.Params
	err := params.Validate()
	if err != nil {
		return nil, xerrors.Errorf("invalid parameters: %w", err)
	}

	scheme := v.conf.Scheme
	if scheme == nil {
		scheme = signature.NewSchnorr()
	}

	network := v.conf.Network
	if network == nil {
		network = channel.NewNetwork()
	}

	verifier, err := signature.NewVerifier(v.conf.VerifyCacheSize)
	if err != nil {
		return nil, err
	}

	id := xid.New().String()

	return &run{
		vss:        v,
		id:         id,
		params:     params,
		scheme:     scheme,
		network:    network,
		faults:     faultlog.New(id),
		registry:   keyregistry.New(),
		verifier:   verifier,
		transcript: NewTranscript(transcriptLabel(params, scheme)),
		metrics:    metrics.NewRegistry(),
		elapsed:    make(map[int]time.Duration),
	}, nil
}

// deal runs the dealer and sends row i to receiver i.
func (r *run) deal(ctx context.Context, secret kyber.Scalar) (signature.PublicKey, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	start := time.Now()

	opts := []DealerOption{}
	if r.conf.DealerDegree > 0 {
		opts = append(opts, WithPolynomialDegree(r.conf.DealerDegree))
	}

	dealer := NewDealer(r.params, r.scheme, secret, r.stream(), opts...)

	table, dealerPK, err := dealer.Share()
	if err != nil {
		return nil, err
	}

	err = r.registry.Publish(types.DealerIndex, dealerPK)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= r.params.N; i++ {
		wire, err := types.RowToWire(table[i])
		if err != nil {
			return nil, xerrors.Errorf("row %d: %w", i, err)
		}

		msg := types.RowMessage{
			Receiver:  i,
			Subshares: wire,
		}

		err = r.send(roundDeal, types.DealerIndex, i, msg)
		if err != nil {
			return nil, err
		}
	}

	r.track(types.DealerIndex, time.Since(start))
	r.absorbPrivate(types.DealerIndex, 1, r.params.N)

	return dealerPK, nil
}

// receive runs ReceiveFromDealer on every receiver concurrently. Each
// receiver publishes its key and sends the co-signed subshare of pair (i, k)
// to every k >= i.
func (r *run) receive(ctx context.Context, dealerPK signature.PublicKey) ([]*Receiver, error) {
	receivers := make([]*Receiver, r.params.N+1)

	g, gctx := errgroup.WithContext(ctx)

	for i := 1; i <= r.params.N; i++ {
		receiver := NewReceiver(i, r.params, r.scheme, r.verifier, r.faults, r.receiverOptions(i)...)
		receivers[i] = receiver

		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			start := time.Now()
			index := receiver.Index()

			row, err := r.readRow(index)
			if err != nil {
				return err
			}

			signed, pk, err := receiver.ReceiveFromDealer(dealerPK, row)
			if err != nil {
				return err
			}

			err = r.registry.Publish(index, pk)
			if err != nil {
				return err
			}

			for _, k := range sortedColumns(signed) {
				wire, err := signed[k].ToWire()
				if err != nil {
					return xerrors.Errorf("pair (%d, %d): %w", k, index, err)
				}

				msg := types.SubshareMessage{
					From:     index,
					To:       k,
					Subshare: wire,
				}

				err = r.send(roundReceive, index, k, msg)
				if err != nil {
					return err
				}
			}

			r.track(index, time.Since(start))
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	for i := 1; i <= r.params.N; i++ {
		r.absorbPrivate(i, i, r.params.N)
	}

	return receivers, nil
}

// forward makes every receiver i countersign the subshares of the receivers
// j <= i and send its triply signed row to every reconstructor. It starts
// once all keys of the previous round are published.
func (r *run) forward(ctx context.Context, receivers []*Receiver, dealerPK signature.PublicKey) error {
	g, gctx := errgroup.WithContext(ctx)

	for i := 1; i <= r.params.N; i++ {
		receiver := receivers[i]

		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			start := time.Now()
			index := receiver.Index()
			triple := make(types.Row)

			for j := 1; j <= index; j++ {
				s, found, err := r.readSubshare(j, index)
				if err != nil {
					return err
				}
				if !found {
					continue
				}

				happy, expanded, err := receiver.ReceiveFromParty(j, s, dealerPK, r.registry.Get(j))
				if err != nil {
					return err
				}
				if happy {
					triple[j] = expanded
				}
			}

			wire, err := types.RowToWire(triple)
			if err != nil {
				return xerrors.Errorf("receiver %d: %w", index, err)
			}

			msg := types.TripleRowMessage{
				From:      index,
				Subshares: wire,
			}

			for c := 1; c <= r.params.T+1; c++ {
				err = r.send(roundForward, index, reconstructorIndex(r.params, c), msg)
				if err != nil {
					return err
				}
			}

			r.track(index, time.Since(start))
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return err
	}

	for i := 1; i <= r.params.N; i++ {
		r.absorbPrivate(i, reconstructorIndex(r.params, 1), reconstructorIndex(r.params, r.params.T+1))
	}

	return nil
}

// reconstruct makes the t+1 reconstructors verify what they received and
// broadcast their aggregate.
func (r *run) reconstruct(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for c := 1; c <= r.params.T+1; c++ {
		index := reconstructorIndex(r.params, c)

		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			start := time.Now()
			reconstructor := NewReconstructor(index, r.verifier, r.faults)

			for i := 1; i <= r.params.N; i++ {
				row, found, err := r.readTripleRow(i, index)
				if err != nil {
					return err
				}
				if !found {
					continue
				}

				reconstructor.ReceiveFromParty(i, row, r.registry)
			}

			aggregate := reconstructor.Aggregate()

			rows := make(map[int]map[int]types.WireSubshare, len(aggregate))
			for h, row := range aggregate {
				wire, err := types.RowToWire(row)
				if err != nil {
					return xerrors.Errorf("reconstructor %d, row %d: %w", index, h, err)
				}
				rows[h] = wire
			}

			msg := types.AggregateMessage{
				Reconstructor: index,
				Rows:          rows,
			}

			err = r.broadcast(roundReconstruct, index, msg)
			if err != nil {
				return err
			}

			r.track(index, time.Since(start))
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return err
	}

	r.absorb(r.own(r.network.Broadcast().Read(roundReconstruct)))
	return nil
}

// compute merges the broadcast aggregates and computes the secret.
func (r *run) compute(ctx context.Context) (bool, kyber.Scalar, error) {
	err := ctx.Err()
	if err != nil {
		return false, nil, err
	}

	start := time.Now()
	index := clientIndex(r.params)
	client := NewClient(index, r.params, r.verifier, r.faults)

	pkts := sortedByFrom(r.own(r.network.Broadcast().Read(roundReconstruct)))
	aggregates := make([]Aggregate, 0, len(pkts))

	for _, pkt := range pkts {
		msg := types.AggregateMessage{}
		err := unmarshalMessage(pkt, &msg)
		if err != nil {
			return false, nil, err
		}

		table := make(types.ShareTable, len(msg.Rows))
		for h, wire := range msg.Rows {
			row, err := types.RowFromWire(Suite, wire)
			if err != nil {
				return false, nil, xerrors.Errorf("aggregate of %d, row %d: %w", msg.Reconstructor, h, err)
			}
			table[h] = row
		}
		aggregates = append(aggregates, Aggregate{
			Reconstructor: pkt.From,
			Table:         table,
		})
	}

	merged := client.Merge(aggregates, r.registry)
	recoverable, recovered := client.ComputeSecret(merged, r.registry)

	r.track(index, time.Since(start))
	return recoverable, recovered, nil
}

func (r *run) report(recoverable bool, secret kyber.Scalar) types.Report {
	report := types.Report{
		RunID:              r.id,
		Params:             r.params,
		Recoverable:        recoverable,
		Secret:             secret,
		Faults:             r.faults.All(),
		Timings:            make(map[types.Role]types.RoleTiming),
		Communication:      make(map[types.Role]int64),
		PartyTimings:       make(map[int]time.Duration),
		PartyCommunication: make(map[int]int64),
		TranscriptDigest:   r.transcript.Digest(digestSize),
	}

	roles := []struct {
		role  types.Role
		first int
		last  int
	}{
		{types.RoleDealer, types.DealerIndex, types.DealerIndex},
		{types.RoleReceiver, 1, r.params.N},
		{types.RoleReconstructor, reconstructorIndex(r.params, 1), reconstructorIndex(r.params, r.params.T+1)},
		{types.RoleClient, clientIndex(r.params), clientIndex(r.params)},
	}

	r.Lock()
	defer r.Unlock()

	for _, role := range roles {
		timer := metrics.GetOrRegisterTimer(string(role.role), r.metrics)

		for party := role.first; party <= role.last; party++ {
			elapsed := r.elapsed[party]
			timer.Update(elapsed)

			sent := r.network.RunBytesSent(r.id, party)
			report.PartyTimings[party] = elapsed
			report.PartyCommunication[party] = sent
			report.Communication[role.role] += sent
		}

		report.Timings[role.role] = types.RoleTiming{
			Count: timer.Count(),
			Total: time.Duration(timer.Sum()),
			Min:   time.Duration(timer.Min()),
			Max:   time.Duration(timer.Max()),
			First: r.elapsed[role.first],
			Last:  r.elapsed[role.last],
		}
	}

	return report
}

func (r *run) stream() cipher.Stream {
	if len(r.conf.Seed) > 0 {
		return Suite.XOF(r.conf.Seed)
	}
	return random.New()
}

func (r *run) receiverOptions(index int) []ReceiverOption {
	pred, ok := r.conf.Forgeries[index]
	if !ok || pred == nil {
		return nil
	}
	return []ReceiverOption{WithForgery(pred)}
}

// track adds elapsed to the wall-clock time of party.
func (r *run) track(party int, elapsed time.Duration) {
	r.Lock()
	defer r.Unlock()
	r.elapsed[party] += elapsed
}

func (r *run) readRow(index int) (types.Row, error) {
	pkts := r.own(r.network.Private(types.DealerIndex, index).Read())
	if len(pkts) == 0 {
		return types.Row{}, nil
	}

	msg := types.RowMessage{}
	err := unmarshalMessage(pkts[len(pkts)-1], &msg)
	if err != nil {
		return nil, err
	}

	return types.RowFromWire(Suite, msg.Subshares)
}

func (r *run) readSubshare(from, to int) (types.Subshare, bool, error) {
	pkts := r.own(r.network.Private(from, to).Read())
	if len(pkts) == 0 {
		return types.Subshare{}, false, nil
	}

	msg := types.SubshareMessage{}
	err := unmarshalMessage(pkts[len(pkts)-1], &msg)
	if err != nil {
		return types.Subshare{}, false, err
	}

	s, err := msg.Subshare.Decode(Suite)
	if err != nil {
		return types.Subshare{}, false, xerrors.Errorf("subshare %d -> %d: %w", from, to, err)
	}

	return s, true, nil
}

func (r *run) readTripleRow(from, to int) (types.Row, bool, error) {
	pkts := r.own(r.network.Private(from, to).Read())
	if len(pkts) == 0 {
		return nil, false, nil
	}

	msg := types.TripleRowMessage{}
	err := unmarshalMessage(pkts[len(pkts)-1], &msg)
	if err != nil {
		return nil, false, err
	}

	row, err := types.RowFromWire(Suite, msg.Subshares)
	if err != nil {
		return nil, false, xerrors.Errorf("triple row %d -> %d: %w", from, to, err)
	}

	return row, true, nil
}

// absorbPrivate absorbs the messages sent by from to the parties first..last.
func (r *run) absorbPrivate(from, first, last int) {
	for to := first; to <= last; to++ {
		r.absorb(r.own(r.network.Private(from, to).Read()))
	}
}

// own keeps the messages of this run, dropping those other runs left on a
// shared network.
func (r *run) own(pkts []transport.Message) []transport.Message {
	kept := pkts[:0]
	for _, pkt := range pkts {
		if pkt.Run == r.id {
			kept = append(kept, pkt)
		}
	}
	return kept
}

func (r *run) absorb(pkts []transport.Message) {
	for _, pkt := range sortedByFrom(pkts) {
		r.transcript.AppendMessage([]byte(pkt.Type), pkt.Payload)
	}
}

func transcriptLabel(params types.PublicParameters, scheme signature.Scheme) string {
	return scheme.Name() + "/" + params.String()
}

func sortedColumns(row types.Row) []int {
	columns := make([]int, 0, len(row))
	for k := range row {
		columns = append(columns, k)
	}
	sort.Ints(columns)
	return columns
}

func sortedByFrom(pkts []transport.Message) []transport.Message {
	sort.SliceStable(pkts, func(i, j int) bool {
		return pkts[i].From < pkts[j].From
	})
	return pkts
}
