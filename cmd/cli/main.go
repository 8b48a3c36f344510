package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotiphone/storefront/internal/config"
	"github.com/hotiphone/storefront/internal/handlers"
	"github.com/hotiphone/storefront/internal/models"
	"github.com/hotiphone/storefront/internal/store"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Back-office CLI for the storefront",
}

var (
	addUserEmail    string
	addUserPassword string
	addUserName     string
	addUserRole     string

	setRoleEmail string
	setRoleValue string

	exportOut string
)

func init() {
	addUserCmd.Flags().StringVar(&addUserEmail, "email", "", "email for the new account")
	addUserCmd.Flags().StringVar(&addUserPassword, "password", "", "password for the new account")
	addUserCmd.Flags().StringVar(&addUserName, "name", "", "full name for the new account")
	addUserCmd.Flags().StringVar(&addUserRole, "role", string(models.RoleCustomer), "role: customer, member or admin")

	setRoleCmd.Flags().StringVar(&setRoleEmail, "email", "", "email of the account to update")
	setRoleCmd.Flags().StringVar(&setRoleValue, "role", "", "role: customer, member or admin")

	exportCustomersCmd.Flags().StringVar(&exportOut, "out", "clientes.csv", "output file")

	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(setRoleCmd)
	rootCmd.AddCommand(seedProductsCmd)
	rootCmd.AddCommand(exportCustomersCmd)
}

// bootStore opens the database and ensures the schema is current, so
// the CLI can run before the server ever has.
func bootStore() (*store.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func parseRole(s string) (models.Role, error) {
	switch models.Role(s) {
	case models.RoleCustomer, models.RoleMember, models.RoleAdmin:
		return models.Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

var addUserCmd = &cobra.Command{
	Use:   "add-user",
	Short: "Create an account, optionally with an elevated role",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addUserEmail == "" || addUserPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		role, err := parseRole(addUserRole)
		if err != nil {
			return err
		}
		db, err := bootStore()
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(addUserPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		profile := &models.Profile{
			Email:    addUserEmail,
			Password: string(hash),
			FullName: addUserName,
			Role:     role,
		}
		if err := db.CreateProfile(profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		fmt.Printf("Account %s created with role %s.\n", addUserEmail, role)
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change the role of an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if setRoleEmail == "" {
			return fmt.Errorf("--email is required")
		}
		role, err := parseRole(setRoleValue)
		if err != nil {
			return err
		}
		db, err := bootStore()
		if err != nil {
			return err
		}
		if err := db.UpdateProfileRole(setRoleEmail, role); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		fmt.Printf("Account %s is now %s.\n", setRoleEmail, role)
		return nil
	},
}

var seedProductsCmd = &cobra.Command{
	Use:   "seed-products",
	Short: "Insert a small demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootStore()
		if err != nil {
			return err
		}
		for i := range seedCatalog {
			p := seedCatalog[i]
			if err := db.CreateProduct(&p); err != nil {
				return fmt.Errorf("seed %q: %w", p.Name, err)
			}
			fmt.Printf("Created product #%d %s\n", p.ID, p.Name)
		}
		return nil
	},
}

var seedCatalog = []models.Product{
	{
		Name:        "iPhone 15 Pro",
		Description: "Titânio, chip A17 Pro, câmera de 48 MP.",
		Price:       7999,
		Colors:      []string{"Titânio Natural", "Titânio Azul", "Titânio Preto"},
		Capacities:  []string{"128GB", "256GB", "512GB"},
		Status:      models.ProductActive,
	},
	{
		Name:        "iPhone 14",
		Description: "Tela Super Retina XDR de 6,1 polegadas.",
		Price:       4599,
		Colors:      []string{"Meia-noite", "Estelar", "Azul"},
		Capacities:  []string{"128GB", "256GB"},
		Status:      models.ProductActive,
	},
	{
		Name:        "AirPods Pro 2",
		Description: "Cancelamento ativo de ruído, estojo MagSafe.",
		Price:       1899,
		Colors:      []string{"Branco"},
		Capacities:  []string{"Único"},
		Status:      models.ProductActive,
	},
}

var exportCustomersCmd = &cobra.Command{
	Use:   "export-customers",
	Short: "Write the customer list as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootStore()
		if err != nil {
			return err
		}
		customers, err := db.GetAllProfiles()
		if err != nil {
			return fmt.Errorf("load customers: %w", err)
		}
		if len(customers) == 0 {
			fmt.Println("Nenhum cliente para exportar.")
			return nil
		}
		data, err := handlers.CustomersCSV(customers)
		if err != nil {
			return fmt.Errorf("build csv: %w", err)
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Printf("Exported %d customers to %s.\n", len(customers), exportOut)
		return nil
	},
}
