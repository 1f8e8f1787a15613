package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"realm_backend/internal/domain"
	"realm_backend/internal/repository"
	"realm_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func testWallet() string {
	return fmt.Sprintf("0xtest%d", time.Now().UnixNano())
}

func TestUserRepository_GetOrCreate(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)

	wallet := testWallet()

	u1, err := repo.GetOrCreate(context.Background(), wallet)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u1.RealmBalance != 1000 {
		t.Fatalf("starting balance = %v, want 1000", u1.RealmBalance)
	}
	if u1.ReferralCode == "" {
		t.Fatalf("expected referral code to be assigned")
	}

	u2, err := repo.GetOrCreate(context.Background(), wallet)
	if err != nil {
		t.Fatalf("get existing user: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("second GetOrCreate created a new user: %d != %d", u2.ID, u1.ID)
	}
	if u2.RealmBalance != u1.RealmBalance {
		t.Fatalf("balance changed on re-login: %v != %v", u2.RealmBalance, u1.RealmBalance)
	}
}

func TestLedgerService_DebitRejectsOverdraft(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)
	ledger := service.NewLedgerService(db)

	u, err := repo.GetOrCreate(context.Background(), testWallet())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	ctx := context.Background()
	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := ledger.DebitRealmWithTx(ctx, tx, u.ID, u.RealmBalance+1); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("overdraft error = %v, want ErrInsufficientFunds", err)
	}
	_ = tx.Rollback(ctx)

	// Balance untouched after the failed debit.
	after, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.RealmBalance != u.RealmBalance {
		t.Fatalf("balance = %v, want %v", after.RealmBalance, u.RealmBalance)
	}
}

func TestStakingService_StakeUnstakeRoundTrip(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)
	staking := service.NewStakingService(db)

	u, err := repo.GetOrCreate(context.Background(), testWallet())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	ctx := context.Background()

	res, err := staking.Stake(ctx, u.ID, 200)
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	if res.StakedAmount != 200 {
		t.Fatalf("staked = %v, want 200", res.StakedAmount)
	}
	if res.RealmBalance != u.RealmBalance-200 {
		t.Fatalf("balance = %v, want %v", res.RealmBalance, u.RealmBalance-200)
	}

	res, err = staking.Unstake(ctx, u.ID, 200)
	if err != nil {
		t.Fatalf("unstake: %v", err)
	}
	if res.StakedAmount != 0 {
		t.Fatalf("staked after unstake = %v, want 0", res.StakedAmount)
	}
	if res.RealmBalance != u.RealmBalance {
		t.Fatalf("balance after round trip = %v, want %v", res.RealmBalance, u.RealmBalance)
	}
}

func TestReferralService_CodeUsableOnce(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)
	referrals := service.NewReferralService(db)

	ctx := context.Background()

	referrer, err := repo.GetOrCreate(ctx, testWallet())
	if err != nil {
		t.Fatalf("create referrer: %v", err)
	}
	referee, err := repo.GetOrCreate(ctx, testWallet())
	if err != nil {
		t.Fatalf("create referee: %v", err)
	}

	balance, err := referrals.Use(ctx, referee.ID, referrer.ReferralCode)
	if err != nil {
		t.Fatalf("use referral: %v", err)
	}
	if balance != referee.RealmBalance+100 {
		t.Fatalf("balance = %v, want %v", balance, referee.RealmBalance+100)
	}

	if _, err := referrals.Use(ctx, referee.ID, referrer.ReferralCode); !errors.Is(err, domain.ErrReferralUsed) {
		t.Fatalf("second use error = %v, want ErrReferralUsed", err)
	}

	if _, err := referrals.Use(ctx, referrer.ID, referrer.ReferralCode); !errors.Is(err, domain.ErrSelfReferral) {
		t.Fatalf("self use error = %v, want ErrSelfReferral", err)
	}
}

func TestReferralService_MutualCodes(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)
	referrals := service.NewReferralService(db)

	ctx := context.Background()

	a, err := repo.GetOrCreate(ctx, testWallet())
	if err != nil {
		t.Fatalf("create user a: %v", err)
	}
	b, err := repo.GetOrCreate(ctx, testWallet())
	if err != nil {
		t.Fatalf("create user b: %v", err)
	}

	// Each direction locks both rows in ascending ID order, so the
	// pair can refer each other without deadlocking.
	if _, err := referrals.Use(ctx, a.ID, b.ReferralCode); err != nil {
		t.Fatalf("a uses b's code: %v", err)
	}
	if _, err := referrals.Use(ctx, b.ID, a.ReferralCode); err != nil {
		t.Fatalf("b uses a's code: %v", err)
	}

	statsA, err := referrals.Stats(ctx, a.ID)
	if err != nil {
		t.Fatalf("stats a: %v", err)
	}
	if statsA.TotalReferrals != 1 || statsA.TotalEarned != 100 {
		t.Fatalf("a stats = %d/%v, want 1/100", statsA.TotalReferrals, statsA.TotalEarned)
	}
}

func TestBattleService_Lifecycle(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)
	battles := service.NewBattleService(db, 1, 10000)

	ctx := context.Background()

	creator, err := repo.GetOrCreate(ctx, testWallet())
	if err != nil {
		t.Fatalf("create creator: %v", err)
	}
	joiner, err := repo.GetOrCreate(ctx, testWallet())
	if err != nil {
		t.Fatalf("create joiner: %v", err)
	}

	const wager = 50.0

	battle, err := battles.Create(ctx, creator.ID, wager)
	if err != nil {
		t.Fatalf("create battle: %v", err)
	}
	if battle.Status != domain.BattleStatusWaiting {
		t.Fatalf("status after create = %q, want waiting", battle.Status)
	}

	creator, err = repo.GetByID(ctx, creator.ID)
	if err != nil {
		t.Fatalf("reload creator: %v", err)
	}
	if creator.RealmBalance != 950 {
		t.Fatalf("creator balance after create = %v, want 950", creator.RealmBalance)
	}
	if creator.Energy != 80 {
		t.Fatalf("creator energy after create = %d, want 80", creator.Energy)
	}

	battle, err = battles.Join(ctx, joiner.ID, battle.ID)
	if err != nil {
		t.Fatalf("join battle: %v", err)
	}
	if battle.Status != domain.BattleStatusActive {
		t.Fatalf("status after join = %q, want active", battle.Status)
	}
	if battle.ResolveAt == nil {
		t.Fatalf("resolve deadline not persisted at join")
	}

	joiner, err = repo.GetByID(ctx, joiner.ID)
	if err != nil {
		t.Fatalf("reload joiner: %v", err)
	}
	if joiner.RealmBalance != 950 {
		t.Fatalf("joiner balance after join = %v, want 950", joiner.RealmBalance)
	}
	if joiner.Energy != 80 {
		t.Fatalf("joiner energy after join = %d, want 80", joiner.Energy)
	}

	outcome, err := battles.Resolve(ctx, battle.ID)
	if err != nil {
		t.Fatalf("resolve battle: %v", err)
	}
	if outcome == nil {
		t.Fatalf("expected an outcome from the first resolution")
	}

	// Pot conservation: payout + admin fee is exactly both wagers.
	if outcome.Payout != 85 || outcome.AdminFee != 15 {
		t.Fatalf("payout/admin fee = %v/%v, want 85/15", outcome.Payout, outcome.AdminFee)
	}
	if outcome.WinnerID != creator.ID && outcome.WinnerID != joiner.ID {
		t.Fatalf("winner %d is neither player", outcome.WinnerID)
	}

	winner, err := repo.GetByID(ctx, outcome.WinnerID)
	if err != nil {
		t.Fatalf("reload winner: %v", err)
	}
	loser, err := repo.GetByID(ctx, outcome.LoserID)
	if err != nil {
		t.Fatalf("reload loser: %v", err)
	}
	if winner.RealmBalance != 950+85 {
		t.Fatalf("winner balance = %v, want %v", winner.RealmBalance, 950+85.0)
	}
	if loser.RealmBalance != 950 {
		t.Fatalf("loser balance = %v, want 950", loser.RealmBalance)
	}
	if winner.BattlesWon != 1 || winner.Experience != 50 {
		t.Fatalf("winner counters = %d won/%d xp, want 1/50", winner.BattlesWon, winner.Experience)
	}
	if loser.BattlesLost != 1 || loser.Experience != 10 {
		t.Fatalf("loser counters = %d lost/%d xp, want 1/10", loser.BattlesLost, loser.Experience)
	}

	// A second resolution matches no active row and pays nothing.
	again, err := battles.Resolve(ctx, battle.ID)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if again != nil {
		t.Fatalf("second resolve produced an outcome: %+v", again)
	}
	winner, err = repo.GetByID(ctx, outcome.WinnerID)
	if err != nil {
		t.Fatalf("reload winner after second resolve: %v", err)
	}
	if winner.RealmBalance != 950+85 {
		t.Fatalf("winner balance after second resolve = %v, want %v", winner.RealmBalance, 950+85.0)
	}
}
